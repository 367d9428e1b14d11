package driver

import (
	"context"
	"fmt"
	"time"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/hir"
	"cedar/internal/layout"
	"cedar/internal/observ"
	"cedar/internal/pipeline"
	"cedar/internal/sema"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/trace"
)

const defaultMaxDiagnostics = 100

// Options configures a check run.
type Options struct {
	// Target selects the data model for layouts and conversions.
	// The zero value resolves to the default x86_64 target.
	Target layout.Target

	// MaxDiagnostics caps the bag. Values <= 0 fall back to the default.
	MaxDiagnostics int

	// Timings appends an informational timing diagnostic to each bag.
	Timings bool

	// Cache, when set, is consulted before the pipeline runs and updated
	// after. Cache failures are swallowed: a broken cache degrades to a
	// full recheck, never to a failed one.
	Cache *DiskCache

	// Progress receives per-stage events. May be nil.
	Progress pipeline.Sink
}

func (o *Options) normalize() {
	if o.Target.Triple == "" {
		o.Target, _ = layout.Lookup("")
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = defaultMaxDiagnostics
	}
}

// Result is everything one checked file produced.
type Result struct {
	Path string
	File *source.File
	Bag  *diag.Bag

	// AST state. Empty on a cache hit.
	Exprs *ast.Exprs
	Units []ast.Unit

	// Typed holds the lowered tree of every expression unit, in unit order.
	Typed []*hir.Expr

	// Declaration state shared between the parser and sema.
	Interner *source.Interner
	Syms     *symbols.Stack
	Tags     *symbols.Tags

	Timings pipeline.Timings
	Cached  bool
}

// Check runs the full pipeline over one file: load, lex, parse, analyze.
// Rule violations land in Result.Bag; the returned error covers I/O and
// infrastructure failures only.
func Check(ctx context.Context, fileSet *source.FileSet, path string, opts Options) (*Result, error) {
	opts.normalize()

	pipeline.EmitStage(opts.Progress, path, pipeline.StageLoad, pipeline.StatusWorking, nil, 0)
	start := time.Now()
	fileID, err := fileSet.Load(path)
	if err != nil {
		pipeline.EmitStage(opts.Progress, path, pipeline.StageLoad, pipeline.StatusError, err, time.Since(start))
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return checkLoaded(ctx, fileSet.Get(fileID), path, time.Since(start), opts), nil
}

// checkLoaded runs lex, parse and analyze over an already loaded file.
// loadDur is the measured duration of the load stage; opts must be
// normalized by the caller.
func checkLoaded(ctx context.Context, file *source.File, path string, loadDur time.Duration, opts Options) *Result {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", 0)
	span.WithExtra("path", path)
	started := time.Now()

	res := &Result{
		Path: path,
		File: file,
		Bag:  diag.NewBag(opts.MaxDiagnostics),
	}
	timer := observ.NewTimer()

	loadNote := ""
	if opts.Timings {
		loadNote = fmt.Sprintf("bytes=%d", len(file.Content))
	}
	timer.Record(string(pipeline.StageLoad), loadDur, loadNote)
	res.Timings.Set(pipeline.StageLoad, loadDur)

	finish := func(detail string) *Result {
		if opts.Timings {
			report := timer.Report()
			appendTimingDiagnostic(res.Bag, timingPayload{
				Kind:    "file",
				Path:    file.Path,
				TotalMS: report.TotalMS,
				Phases:  report.Phases,
			})
		}
		status := pipeline.StatusDone
		if res.Bag.HasErrors() {
			status = pipeline.StatusError
		}
		pipeline.EmitStage(opts.Progress, path, pipeline.StageAnalyze, status, nil, time.Since(started))
		span.End(detail)
		return res
	}

	// Ключ кэша считается от содержимого: совпало — диагностики уже известны.
	key := Key(file.Content, opts.Target.Triple)
	if opts.Cache != nil {
		var payload CachePayload
		if hit, err := opts.Cache.Get(key, opts.Target.Triple, &payload); err == nil && hit {
			restoreDiags(res.Bag, file.ID, &payload)
			res.Cached = true
			return finish("cache hit")
		}
	}

	begin := func(stage pipeline.Stage) (int, time.Time) {
		pipeline.EmitStage(opts.Progress, path, stage, pipeline.StatusWorking, nil, 0)
		return timer.Begin(string(stage)), time.Now()
	}
	end := func(idx int, stage pipeline.Stage, startedAt time.Time, note string) {
		timer.End(idx, note)
		res.Timings.Set(stage, time.Since(startedAt))
	}

	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: res.Bag})

	idx, stageStart := begin(pipeline.StageLex)
	tokens := lexToEOF(file, reporter)
	note := ""
	if opts.Timings {
		note = fmt.Sprintf("tokens=%d", tokens)
	}
	end(idx, pipeline.StageLex, stageStart, note)

	idx, stageStart = begin(pipeline.StageParse)
	st := runParser(file, reporter, opts.MaxDiagnostics)
	res.Exprs = st.exprs
	res.Units = st.units
	res.Interner = st.env.Interner
	res.Syms = st.env.Syms
	res.Tags = st.env.Tags
	note = ""
	if opts.Timings {
		note = fmt.Sprintf("units=%d", len(res.Units))
	}
	end(idx, pipeline.StageParse, stageStart, note)

	idx, stageStart = begin(pipeline.StageAnalyze)
	an := sema.New(sema.Config{
		Exprs:    res.Exprs,
		Syms:     res.Syms,
		Tags:     res.Tags,
		Target:   opts.Target,
		Interner: res.Interner,
		Reporter: reporter,
	})
	for i, unit := range res.Units {
		if unit.Kind != ast.UnitExpr || !unit.Expr.IsValid() {
			continue
		}
		unitSpan := trace.Begin(tracer, trace.ScopeUnit, fmt.Sprintf("unit:%d", i), span.ID())
		res.Typed = append(res.Typed, an.LowerExpr(unit.Expr))
		unitSpan.End("")
	}
	note = ""
	if opts.Timings {
		note = fmt.Sprintf("exprs=%d", len(res.Typed))
	}
	end(idx, pipeline.StageAnalyze, stageStart, note)

	res.Bag.Sort()

	if opts.Cache != nil {
		// Ошибка записи не фатальна: следующий запуск просто пересчитает.
		_ = opts.Cache.Put(key, payloadFromBag(res.Bag, opts.Target.Triple))
	}

	return finish(fmt.Sprintf("units=%d", len(res.Units)))
}
