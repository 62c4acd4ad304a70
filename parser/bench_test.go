package parser_test

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/bmatsuo/rlisp/elpstest"
	"github.com/bmatsuo/rlisp/parser"
	"github.com/bmatsuo/rlisp/parser/rdparser"
)

const fixtureDir = "testfixtures"

func BenchmarkParser(b *testing.B) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.lisp"))
	if err != nil {
		b.Fatalf("Failed to list test fixtures: %v", err)
	}
	sort.Strings(files) // should be redundant
	for _, path := range files {
		b.Run("parsec/"+filepath.Base(path), elpstest.BenchmarkParse(path, parser.NewReader))
		b.Run("rdparser/"+filepath.Base(path), elpstest.BenchmarkParse(path, rdparser.NewReader))
	}
}
