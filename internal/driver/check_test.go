package driver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cedar/internal/diag"
	"cedar/internal/layout"
	"cedar/internal/pipeline"
	"cedar/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckCleanFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", "int x; x = 1 + 2;\n")

	res, err := Check(context.Background(), source.NewFileSet(), path, Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	if len(res.Units) != 2 {
		t.Fatalf("units = %d, want 2", len(res.Units))
	}
	if len(res.Typed) != 1 {
		t.Fatalf("typed exprs = %d, want 1", len(res.Typed))
	}
	if res.Cached {
		t.Fatal("run without cache must not be cached")
	}
	for _, stage := range pipeline.AllStages {
		if !res.Timings.Has(stage) {
			t.Errorf("missing %s timing", stage)
		}
	}
}

func TestCheckReportsViolations(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.c", "foo + 1;\n")

	res, err := Check(context.Background(), source.NewFileSet(), path, Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("want an error diagnostic")
	}
	if got := res.Bag.Items()[0].Code; got != diag.SemUndeclaredVar {
		t.Fatalf("code = %v, want SemUndeclaredVar", got)
	}
	// Нарушение правил не делает результат пустым.
	if len(res.Typed) != 1 {
		t.Fatalf("typed exprs = %d, want 1", len(res.Typed))
	}
}

func TestCheckMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.c")
	if _, err := Check(context.Background(), source.NewFileSet(), path, Options{}); err == nil {
		t.Fatal("want load error")
	}
}

func TestCheckEvents(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", "1 + 2;\n")
	ch := make(chan pipeline.Event, 16)

	res, err := Check(context.Background(), source.NewFileSet(), path, Options{
		Progress: &pipeline.ChannelSink{Ch: ch},
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors in bag")
	}
	close(ch)

	var working []pipeline.Stage
	var last pipeline.Event
	for ev := range ch {
		if ev.Status == pipeline.StatusWorking {
			working = append(working, ev.Stage)
		}
		last = ev
	}
	want := []pipeline.Stage{
		pipeline.StageLoad,
		pipeline.StageLex,
		pipeline.StageParse,
		pipeline.StageAnalyze,
	}
	if diff := cmp.Diff(want, working); diff != "" {
		t.Fatalf("working stages mismatch (-want +got):\n%s", diff)
	}
	if last.Status != pipeline.StatusDone || last.Elapsed <= 0 {
		t.Fatalf("final event = %+v", last)
	}
	if last.File != path {
		t.Fatalf("final event file = %q, want %q", last.File, path)
	}
}

func TestCheckErrorStatusEvent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.c", "foo;\n")
	ch := make(chan pipeline.Event, 16)

	if _, err := Check(context.Background(), source.NewFileSet(), path, Options{
		Progress: &pipeline.ChannelSink{Ch: ch},
	}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	close(ch)

	var last pipeline.Event
	for ev := range ch {
		last = ev
	}
	// Файл с ошибками завершает конвейер со статусом error.
	if last.Status != pipeline.StatusError {
		t.Fatalf("final status = %v, want error", last.Status)
	}
}

func TestCheckTimingsDiagnostic(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", "int x; x = 3;\n")

	res, err := Check(context.Background(), source.NewFileSet(), path, Options{Timings: true})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	items := res.Bag.Items()
	if len(items) == 0 {
		t.Fatal("want a timing diagnostic")
	}
	last := items[len(items)-1]
	if last.Code != diag.ObsTimings || last.Severity != diag.SevInfo {
		t.Fatalf("last diagnostic = %+v", last)
	}
	if !strings.HasPrefix(last.Message, "timings (file)") {
		t.Fatalf("message = %q", last.Message)
	}
	if len(last.Notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(last.Notes))
	}

	var payload struct {
		Kind   string `json:"kind"`
		Phases []struct {
			Name string `json:"name"`
		} `json:"phases"`
	}
	if err := json.Unmarshal([]byte(last.Notes[0].Msg), &payload); err != nil {
		t.Fatalf("note payload: %v", err)
	}
	if payload.Kind != "file" {
		t.Fatalf("payload kind = %q", payload.Kind)
	}
	var names []string
	for _, p := range payload.Phases {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"load", "lex", "parse", "analyze"}, names); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.c", "bar;\n")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	first, err := Check(context.Background(), source.NewFileSet(), path, opts)
	if err != nil {
		t.Fatalf("first Check: %v", err)
	}
	if first.Cached {
		t.Fatal("first run must miss the cache")
	}
	if !first.Bag.HasErrors() {
		t.Fatal("want undeclared identifier error")
	}

	second, err := Check(context.Background(), source.NewFileSet(), path, opts)
	if err != nil {
		t.Fatalf("second Check: %v", err)
	}
	if !second.Cached {
		t.Fatal("second run must hit the cache")
	}
	if second.Exprs != nil || len(second.Units) != 0 {
		t.Fatal("cache hit must skip parsing")
	}

	// Диагностики восстановились с теми же координатами.
	fi, se := first.Bag.Items(), second.Bag.Items()
	if len(fi) != len(se) {
		t.Fatalf("diagnostics = %d, want %d", len(se), len(fi))
	}
	for i := range fi {
		if fi[i].Code != se[i].Code || fi[i].Message != se[i].Message {
			t.Fatalf("diag %d mismatch: %+v vs %+v", i, fi[i], se[i])
		}
		if fi[i].Primary.Start != se[i].Primary.Start || fi[i].Primary.End != se[i].Primary.End {
			t.Fatalf("diag %d span mismatch: %+v vs %+v", i, fi[i].Primary, se[i].Primary)
		}
	}
}

func TestCheckCacheKeyedByTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.c", "int *p; p + 1;\n")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Check(context.Background(), source.NewFileSet(), path, Options{Cache: cache}); err != nil {
		t.Fatalf("Check: %v", err)
	}

	// Другой target обязан пересчитать, а не взять чужую запись.
	i686, ok := layout.Lookup("i686-linux-gnu")
	if !ok {
		t.Fatal("i686 target missing")
	}
	res, err := Check(context.Background(), source.NewFileSet(), path, Options{Cache: cache, Target: i686})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Cached {
		t.Fatal("different target must miss the cache")
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.c", "1 + 2;\n")
	writeFile(t, dir, "b.c", "nope;\n")
	writeFile(t, dir, filepath.Join("sub", "c.c"), "double d; (long)d;\n")
	writeFile(t, dir, "notes.txt", "ignored")

	fileSet, results, err := CheckDir(context.Background(), dir, DirOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if fileSet.Len() != 3 {
		t.Fatalf("fileSet.Len() = %d, want 3", fileSet.Len())
	}

	wantSuffix := []string{"a.c", "b.c", "c.c"}
	for i, suffix := range wantSuffix {
		if !strings.HasSuffix(results[i].Path, suffix) {
			t.Fatalf("results[%d].Path = %q, want suffix %q", i, results[i].Path, suffix)
		}
	}
	if results[0].Bag.HasErrors() {
		t.Errorf("a.c must be clean")
	}
	if !results[1].Bag.HasErrors() {
		t.Errorf("b.c must report an error")
	}
	if results[2].Bag.HasErrors() {
		t.Errorf("sub/c.c must be clean")
	}
}

func TestCheckDirBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.c", "'a';\n")
	if err := os.Symlink(filepath.Join(dir, "missing.c"), filepath.Join(dir, "broken.c")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, results, err := CheckDir(context.Background(), dir, DirOptions{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	// broken.c сортируется раньше ok.c
	bad := results[0]
	if !strings.HasSuffix(bad.Path, "broken.c") {
		t.Fatalf("results[0].Path = %q", bad.Path)
	}
	if bad.Bag.Len() != 1 || bad.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("bad bag = %+v", bad.Bag.Items())
	}
	// Диагностика не должна позаимствовать span первого загруженного файла.
	if got := bad.Bag.Items()[0].Primary.File; got != source.NoFile {
		t.Fatalf("load error file = %v, want NoFile", got)
	}
	if results[1].Bag.HasErrors() {
		t.Errorf("ok.c must be clean")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	fileSet, results, err := CheckDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 0 || fileSet.Len() != 0 {
		t.Fatalf("results = %d, files = %d, want 0", len(results), fileSet.Len())
	}
}
