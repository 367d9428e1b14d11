package fuzztests

import (
	"testing"
	"time"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/lexer"
	"cedar/internal/parser"
	"cedar/internal/source"
	"cedar/internal/symbols"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parseFuzzInput(input []byte) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fuzz.c", input)
	file := fs.Get(fileID)

	bag := diag.NewBag(128)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	exprs := ast.NewExprs(0)
	env := parser.Env{
		Interner: source.NewInterner(),
		Syms:     symbols.NewStack(symbols.NewArena(0)),
		Tags:     symbols.NewTags(),
	}
	_ = parser.ParseFile(lx, exprs, env, parser.Options{
		MaxErrors: 128,
		Reporter:  reporter,
	})
}

func FuzzParserBuildsUnits(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}
		parseFuzzInput(input)
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops that could be caused by
// malformed input or edge cases in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases that stress error recovery
	f.Add([]byte("int x x = 1; int y;"))          // missing semicolon
	f.Add([]byte("x + 1\nint y;"))                // expression without semicolon
	f.Add([]byte("((((((1))))));"))               // deep grouping
	f.Add([]byte("(int)(long)(char)0;"))          // cast chain
	f.Add([]byte("struct s { int"))               // truncated struct body
	f.Add([]byte("typedef"))                      // bare typedef
	f.Add([]byte("int x; x = = 3;"))              // doubled operator
	f.Add([]byte("1 +"))                          // dangling operator at EOF
	f.Add([]byte("enum e { A = , B };"))          // missing enumerator value
	f.Add([]byte("const const int x;"))           // repeated qualifier

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		// Run parser in a goroutine
		done := make(chan struct{})
		go func() {
			defer close(done)
			parseFuzzInput(input)
		}()

		// Wait for completion or timeout
		select {
		case <-done:
			// Parser completed successfully
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen], []byte("...")...)
}
