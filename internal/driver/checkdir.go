package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cedar/internal/diag"
	"cedar/internal/pipeline"
	"cedar/internal/source"
)

// DirOptions configures a directory check.
type DirOptions struct {
	Options

	// Jobs caps parallel workers. Values <= 0 mean GOMAXPROCS.
	Jobs int
}

// ListCFiles returns every .c file under dir, sorted by path.
func ListCFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".c") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every .c file under dir and returns one result per file,
// in listing order. Result paths and progress events use names from
// pipeline.NormalizeFile, so a UI fed the normalized listing matches
// events to its rows. A file that fails to load still yields a result whose
// bag carries the I/O diagnostic, so one unreadable file never aborts the
// rest of the directory.
func CheckDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []*Result, error) {
	files, err := ListCFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	opts.normalize()
	names := make([]string, len(files))
	for i, file := range files {
		names[i] = pipeline.NormalizeFile(file, dir)
	}

	fileSet := source.NewFileSetWithBase(dir)
	pipeline.EmitQueued(opts.Progress, names)

	// Грузим последовательно: FileSet не потокобезопасен.
	loadIDs := make([]source.FileID, len(files))
	loadDurs := make([]time.Duration, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		pipeline.EmitStage(opts.Progress, names[i], pipeline.StageLoad, pipeline.StatusWorking, nil, 0)
		start := time.Now()
		id, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrs[i] = loadErr
			pipeline.EmitStage(opts.Progress, names[i], pipeline.StageLoad, pipeline.StatusError, loadErr, time.Since(start))
			continue
		}
		loadIDs[i] = id
		loadDurs[i] = time.Since(start)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Каждый воркер пишет только в свой слот, мьютекс не нужен.
	results := make([]*Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		if loadErr := loadErrs[i]; loadErr != nil {
			bag := diag.NewBag(opts.MaxDiagnostics)
			bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOLoadFileError,
				Message:  "failed to load file: " + loadErr.Error(),
				Primary:  source.Span{File: source.NoFile},
			})
			results[i] = &Result{Path: names[i], Bag: bag}
			continue
		}
		i := i
		file := fileSet.Get(loadIDs[i])
		name := names[i]
		dur := loadDurs[i]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = checkLoaded(gctx, file, name, dur, opts.Options)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
