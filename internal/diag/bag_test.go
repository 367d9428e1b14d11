package diag

import (
	"testing"

	"cedar/internal/source"
)

func TestBagCap(t *testing.T) {
	b := NewBag(2)

	if !b.Add(NewError(SemUndeclaredVar, source.Span{}, "first")) {
		t.Fatal("first Add rejected")
	}
	if !b.Add(NewError(SemUndeclaredVar, source.Span{}, "second")) {
		t.Fatal("second Add rejected")
	}
	if b.Add(NewError(SemUndeclaredVar, source.Span{}, "third")) {
		t.Fatal("Add beyond cap accepted")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevInfo, SemInfo, source.Span{}, "fyi"))

	if b.HasErrors() {
		t.Fatal("info-only bag reports errors")
	}
	if b.HasWarnings() {
		t.Fatal("info-only bag reports warnings")
	}

	b.Add(New(SevWarning, SemTypeMismatch, source.Span{}, "suspicious"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Fatal("warning accounting is wrong")
	}

	b.Add(NewError(SemInvalidCast, source.Span{}, "bad"))
	if !b.HasErrors() {
		t.Fatal("bag with an error reports none")
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(10)
	late := source.Span{File: 0, Start: 10, End: 12}
	early := source.Span{File: 0, Start: 2, End: 4}

	b.Add(NewError(SemInvalidAdd, late, "later"))
	b.Add(NewError(SemUndeclaredVar, early, "earlier"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "earlier" || items[1].Message != "later" {
		t.Fatalf("sort order wrong: %q then %q", items[0].Message, items[1].Message)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	sp := source.Span{File: 0, Start: 1, End: 2}

	b.Add(NewError(SemUndeclaredVar, sp, "use of undeclared identifier 'x'"))
	b.Add(NewError(SemUndeclaredVar, sp, "use of undeclared identifier 'x'"))
	b.Add(NewError(SemNotAssignable, sp, "not assignable"))
	b.Dedup()

	if b.Len() != 2 {
		t.Fatalf("after Dedup Len = %d, want 2", b.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SemInvalidCast, source.Span{}, "a"))

	other := NewBag(2)
	other.Add(NewError(SemInvalidCast, source.Span{}, "b"))
	other.Add(NewError(SemInvalidCast, source.Span{}, "c"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("after Merge Len = %d, want 3", a.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 0, Start: 0, End: 1}

	r.Report(SemUndeclaredVar, SevError, sp, "dup", nil)
	r.Report(SemUndeclaredVar, SevError, sp, "dup", nil)
	r.Report(SemUndeclaredVar, SevError, sp, "other", nil)

	if bag.Len() != 2 {
		t.Fatalf("DedupReporter forwarded %d, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexBadNumber, "LEX1004"},
		{SynExprTooDeep, "SYN2009"},
		{SemFloatPointerCast, "SEM3008"},
		{IOLoadFileError, "IO4001"},
		{ObsTimings, "OBS6001"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("ID(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SemInvalidCast, source.Span{}, "cannot cast")
	b.WithNote(source.Span{}, "source type declared here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Emit twice produced %d diagnostics, want 1", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("note lost: %+v", bag.Items()[0])
	}
}
