// Package elpstest provides table driven test harnesses for lisp programs.
package elpstest

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/bmatsuo/rlisp/lisp"
	"github.com/bmatsuo/rlisp/parser/rdparser"
)

// Runner is a test runner.
type Runner struct {
	// NewReader returns the reader used to parse test source.  When NewReader
	// is nil rdparser.NewReader is used.
	NewReader func() lisp.Reader
	// Config is applied to each test environment after the reader is set.
	Config []lisp.Config
}

// NewEnv returns a fresh root environment for a test.
func (r *Runner) NewEnv() (*lisp.LEnv, error) {
	newReader := r.NewReader
	if newReader == nil {
		newReader = rdparser.NewReader
	}
	env := lisp.NewEnv(nil)
	config := append([]lisp.Config{lisp.WithReader(newReader())}, r.Config...)
	lerr := lisp.InitializeUserEnv(env, config...)
	if lerr.Type == lisp.LError {
		return nil, fmt.Errorf("Failed to initialize lisp environment: %v", lerr)
	}
	return env, nil
}

// RunTestFile evaluates the lisp file at path in a fresh environment.  The
// test fails if evaluation produces an error or if the file's last expression
// evaluates to false.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := ioutil.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	env, err := r.NewEnv()
	if err != nil {
		t.Error(err.Error())
		return
	}
	v := env.Load(filepath.Base(path), bytes.NewReader(source))
	if v.Type == lisp.LError {
		t.Error(v.String())
		if v.Stack != nil {
			var buf bytes.Buffer
			v.Stack.DebugPrint(&buf)
			t.Error(buf.String())
		}
		return
	}
	if v.Type == lisp.LBool && !v.Bool {
		t.Errorf("%s: last expression evaluated to false", path)
	}
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result, or the error message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	r.RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs created
// by r.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		env, err := r.NewEnv()
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			result := env.LoadString(test.Name, expr.Expr).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}

// BenchmarkParse returns a benchmark function which parses the file at path
// with a reader returned by newReader.
func BenchmarkParse(path string, newReader func() lisp.Reader) func(b *testing.B) {
	return func(b *testing.B) {
		source, err := ioutil.ReadFile(path)
		if err != nil {
			b.Fatalf("Unable to read test file: %v", err)
		}
		reader := newReader()
		b.SetBytes(int64(len(source)))
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, err := reader.Read(filepath.Base(path), bytes.NewReader(source))
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
