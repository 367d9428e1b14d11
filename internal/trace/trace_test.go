package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"off", LevelOff},
		{"phase", LevelPhase},
		{"DETAIL", LevelDetail},
		{"debug", LevelDebug},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeExpr, false},
		{LevelDebug, ScopeExpr, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Fatalf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestFormatText(t *testing.T) {
	ev := &Event{
		Time:   time.Date(2025, 3, 1, 12, 30, 45, 123456000, time.UTC),
		Kind:   KindSpanEnd,
		Scope:  ScopePass,
		SpanID: 7,
		Name:   "parse",
		Detail: "2 units",
		Extra:  map[string]string{"b": "2", "a": "1"},
	}
	got := string(FormatEvent(ev, FormatText))
	want := "[12:30:45.123456] ← parse (2 units) {a=1, b=2}\n"
	if got != want {
		t.Fatalf("text format mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFormatTextNestedIndent(t *testing.T) {
	ev := &Event{
		Time:     time.Date(2025, 3, 1, 12, 30, 45, 0, time.UTC),
		Kind:     KindSpanBegin,
		Scope:    ScopeUnit,
		SpanID:   8,
		ParentID: 7,
		Name:     "unit:0",
	}
	got := string(FormatEvent(ev, FormatText))
	if !strings.Contains(got, "]   → unit:0") {
		t.Fatalf("nested span should be indented, got %q", got)
	}
}

func TestFormatNDJSON(t *testing.T) {
	ev := &Event{
		Time:   time.Date(2025, 3, 1, 12, 30, 45, 0, time.UTC),
		Seq:    3,
		Kind:   KindPoint,
		Scope:  ScopeDriver,
		SpanID: 9,
		Name:   "check",
		Detail: "cache hit",
	}
	data := FormatEvent(ev, FormatNDJSON)
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Fatalf("ndjson line must end with newline")
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["kind"] != "point" || decoded["scope"] != "driver" {
		t.Fatalf("unexpected kind/scope: %v", decoded)
	}
	if decoded["name"] != "check" || decoded["detail"] != "cache hit" {
		t.Fatalf("unexpected name/detail: %v", decoded)
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	tr.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: ScopePass, Name: "kept"})
	tr.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: ScopeUnit, Name: "dropped"})

	out := buf.String()
	if !strings.Contains(out, "kept") {
		t.Fatalf("pass-scope event missing: %q", out)
	}
	if strings.Contains(out, "dropped") {
		t.Fatalf("unit-scope event must be filtered at phase level: %q", out)
	}
}

func TestSpanBeginEnd(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	span := Begin(tr, ScopePass, "analyze", 0)
	span.WithExtra("units", "2")
	if span.ID() == 0 {
		t.Fatalf("live span must have an ID")
	}
	dur := span.End("ok")
	if dur < 0 {
		t.Fatalf("duration must be non-negative, got %v", dur)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected begin+end events, got %d lines", len(lines))
	}
	var begin, end map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &begin); err != nil {
		t.Fatalf("begin line: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("end line: %v", err)
	}
	if begin["kind"] != "begin" || end["kind"] != "end" {
		t.Fatalf("kinds = %v / %v", begin["kind"], end["kind"])
	}
	if begin["span_id"] != end["span_id"] {
		t.Fatalf("span ids differ: %v vs %v", begin["span_id"], end["span_id"])
	}
	extra, ok := end["extra"].(map[string]any)
	if !ok || extra["units"] != "2" {
		t.Fatalf("extra missing on end event: %v", end)
	}
}

func TestSpanBelowLevelIsNop(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopeUnit, "unit:0", 0)
	span.End("")
	if buf.Len() != 0 {
		t.Fatalf("unit span at phase level should emit nothing, got %q", buf.String())
	}
	if span.ID() != 0 {
		t.Fatalf("suppressed span must have zero ID")
	}
}

func TestNopTracer(t *testing.T) {
	if Nop.Enabled() {
		t.Fatalf("nop tracer must be disabled")
	}
	Nop.Emit(&Event{Name: "ignored"})
	if err := Nop.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := Nop.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	span := Begin(nil, ScopeDriver, "x", 0)
	if got := span.End(""); got != 0 {
		t.Fatalf("nop span duration = %v, want 0", got)
	}
}

func TestNewOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off config must return disabled tracer")
	}
}

func TestNewDetectsNDJSONExtension(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf, OutputPath: "run.ndjson"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: ScopeDriver, Name: "check"})
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected ndjson output, got %q", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	if got := FromContext(nil); got != Nop {
		t.Fatalf("nil context must yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if got := FromContext(ctx); got != Tracer(tr) {
		t.Fatalf("tracer not propagated through context")
	}
}
