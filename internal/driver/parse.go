package driver

import (
	"fortio.org/safecast"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/lexer"
	"cedar/internal/parser"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/token"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Exprs   *ast.Exprs
	Units   []ast.Unit
	Bag     *diag.Bag

	// Declaration state the parser filled in. Sema resolves against the
	// same pieces, so callers that go further must reuse them.
	Interner *source.Interner
	Syms     *symbols.Stack
	Tags     *symbols.Tags
}

// Parse loads one file and runs the lexer and parser over it, stopping
// before semantic analysis.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	file := fileSet.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	res := parseLoaded(file, reporter, maxDiagnostics)

	return &ParseResult{
		FileSet:  fileSet,
		File:     file,
		Exprs:    res.exprs,
		Units:    res.units,
		Bag:      bag,
		Interner: res.env.Interner,
		Syms:     res.env.Syms,
		Tags:     res.env.Tags,
	}, nil
}

type parseState struct {
	exprs *ast.Exprs
	units []ast.Unit
	env   parser.Env
}

// parseLoaded runs the lex and parse passes over an already loaded file.
//
// Лексические диагностики собирает отдельный прогон лексера с репортером;
// парсер получает немой лексер, иначе каждая ошибка отрепортится дважды.
func parseLoaded(file *source.File, reporter diag.Reporter, maxDiagnostics int) parseState {
	lexToEOF(file, reporter)
	return runParser(file, reporter, maxDiagnostics)
}

// runParser parses an already lexed file with a fresh expression arena and
// symbol environment. The lexer it builds is silent; lexical diagnostics are
// the caller's job.
func runParser(file *source.File, reporter diag.Reporter, maxDiagnostics int) parseState {
	st := parseState{
		exprs: ast.NewExprs(0),
		env: parser.Env{
			Interner: source.NewInterner(),
			Syms:     symbols.NewStack(symbols.NewArena(0)),
			Tags:     symbols.NewTags(),
		},
	}

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		maxErrors = ^uint(0)
	}

	silent := lexer.New(file, lexer.Options{})
	result := parser.ParseFile(silent, st.exprs, st.env, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  reporter,
	})
	st.units = result.Units
	return st
}

// lexToEOF drains the lexer once, reporting lexical errors, and returns
// the number of significant tokens seen.
func lexToEOF(file *source.File, reporter diag.Reporter) int {
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	count := 0
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return count
		}
		count++
	}
}
