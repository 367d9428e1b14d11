package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lex")
	time.Sleep(time.Millisecond)
	tm.End(idx, "42 tokens")

	report := tm.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("got %d phases, want 1", len(report.Phases))
	}
	p := report.Phases[0]
	if p.Name != "lex" || p.Note != "42 tokens" {
		t.Fatalf("phase = %+v", p)
	}
	if p.DurationMS <= 0 {
		t.Fatalf("duration must be positive, got %v", p.DurationMS)
	}
	if report.TotalMS < p.DurationMS {
		t.Fatalf("total %v must cover phase %v", report.TotalMS, p.DurationMS)
	}
}

func TestTimerRecord(t *testing.T) {
	tm := NewTimer()
	tm.Record("load", 5*time.Millisecond, "bytes=10")

	report := tm.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("got %d phases, want 1", len(report.Phases))
	}
	p := report.Phases[0]
	if p.Name != "load" || p.Note != "bytes=10" {
		t.Fatalf("phase = %+v", p)
	}
	if p.DurationMS != 5 {
		t.Fatalf("recorded duration = %v ms, want 5", p.DurationMS)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(-1, "")
	tm.End(5, "")
	if got := len(tm.Report().Phases); got != 0 {
		t.Fatalf("got %d phases, want 0", got)
	}
}

func TestTimerEmptyReport(t *testing.T) {
	tm := NewTimer()
	report := tm.Report()
	if report.TotalMS != 0 || len(report.Phases) != 0 {
		t.Fatalf("empty timer must produce zero report, got %+v", report)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "3 units")

	summary := tm.Summary()
	if !strings.HasPrefix(summary, "timings:\n") {
		t.Fatalf("summary must start with header, got %q", summary)
	}
	if !strings.Contains(summary, "parse") || !strings.Contains(summary, "// 3 units") {
		t.Fatalf("summary missing phase row: %q", summary)
	}
	if !strings.Contains(summary, "total") {
		t.Fatalf("summary missing total row: %q", summary)
	}
}
