package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, предел для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addExpressionSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.c файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".c" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
	// добавляем хотя бы один минимальный пример на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("int x; x = x + 1;\n"))
}

// addExpressionSeeds подмешивает выражения, покрывающие основные формы языка.
func addExpressionSeeds(f *testing.F) {
	seeds := []string{
		"int x; unsigned u; x + u;",
		"double d; int i; d * i - 2.5;",
		"int a[10]; *(a + 2) = 7;",
		"int a[4]; int *p; p = a; p - a;",
		"struct point { int x; int y; }; struct point p; p;",
		"char c; (long)c + 1L;",
		"int x; x += 2; x <<= 1; -x;",
		"int x; int y; x == y; x < y != 1;",
		"int x; x & 1 ^ (x >> 2);",
		"int f(); f;",
		"enum color { RED, GREEN = 5 }; enum color c; c == GREEN;",
		"typedef int myint; myint m; (myint)m;",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
