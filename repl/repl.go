// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatsuo/rlisp/history"
	"github.com/bmatsuo/rlisp/lisp"
	"github.com/bmatsuo/rlisp/parser/rdparser"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// DefaultPrompt is the prompt used when none is configured.
const DefaultPrompt = "rlisp> "

// ExitCommand terminates the session when entered on a line by itself.
const ExitCommand = "exit"

// Option configures a Session.
type Option func(*Session)

// WithPrompt sets the primary prompt.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// WithHistory records every evaluated input in store under the given session
// name.
func WithHistory(store *history.Store, session string) Option {
	return func(s *Session) {
		s.history = store
		s.name = session
	}
}

// WithHistoryFile makes readline persist line editing history in path.
func WithHistoryFile(path string) Option {
	return func(s *Session) {
		s.historyFile = path
	}
}

// WithOutput makes the session write values to stdout and errors to stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Session) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithColor forces colored error output on or off.  By default color is used
// when stdout is a terminal.
func WithColor(enabled bool) Option {
	return func(s *Session) {
		if enabled {
			s.errColor.EnableColor()
		} else {
			s.errColor.DisableColor()
		}
	}
}

// WithLogger makes the session log to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is the state of an interactive session: the root environment and
// any partially entered expression.
type Session struct {
	env         *lisp.LEnv
	prompt      string
	buf         []string
	stdout      io.Writer
	stderr      io.Writer
	errColor    *color.Color
	history     *history.Store
	name        string
	historyFile string
	logger      *slog.Logger
}

// NewSession returns a Session which evaluates input in env.
func NewSession(env *lisp.LEnv, opts ...Option) *Session {
	s := &Session{
		env:      env,
		prompt:   DefaultPrompt,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		errColor: color.New(color.FgRed),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt returns the prompt for the next line of input.  While an expression
// is incomplete the prompt is blank space as wide as the primary prompt.
func (s *Session) Prompt() string {
	if s.Pending() {
		return strings.Repeat(" ", len(s.prompt)) // prompt had better be ascii...
	}
	return s.prompt
}

// Pending returns true if the session is waiting for the rest of an
// incomplete expression.
func (s *Session) Pending() bool {
	return len(s.buf) != 0
}

// Reset discards any partially entered expression.
func (s *Session) Reset() {
	s.buf = nil
}

// Input processes one line of input.  Lines are buffered until every list
// they open has been closed, then the buffered text is evaluated and the
// result printed.  Input returns false when the line asks to end the session.
func (s *Session) Input(ctx context.Context, line string) bool {
	if !s.Pending() && strings.TrimSpace(line) == ExitCommand {
		return false
	}
	s.buf = append(s.buf, line)
	text := strings.Join(s.buf, "\n")
	depth, err := rdparser.Depth("repl", strings.NewReader(text))
	if err == nil && depth > 0 {
		return true
	}
	s.buf = nil
	if strings.TrimSpace(text) == "" {
		return true
	}
	v := s.env.LoadString("repl", text)
	s.record(ctx, text, v)
	if v.Type == lisp.LError {
		s.errln(v.Str)
		return true
	}
	if !v.IsVoid() {
		fmt.Fprintln(s.stdout, v)
	}
	return true
}

func (s *Session) record(ctx context.Context, source string, v *lisp.LVal) {
	if s.history == nil {
		return
	}
	e := history.Entry{Session: s.name, Source: source}
	if v.Type == lisp.LError {
		e.Error = v.Str
	} else {
		e.Result = v.String()
	}
	if err := s.history.Record(ctx, e); err != nil {
		s.logger.Warn("unable to record history", "error", err)
	}
}

func (s *Session) errln(v ...interface{}) {
	s.errColor.Fprintln(s.stderr, v...)
}

// RunRepl runs an interactive session on the terminal, evaluating input in
// env, until the user enters ExitCommand or closes the input stream.
func RunRepl(ctx context.Context, env *lisp.LEnv, opts ...Option) error {
	s := NewSession(env, opts...)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt(),
		HistoryFile:     s.historyFile,
		InterruptPrompt: "^C",
		Stdout:          s.stdout,
		Stderr:          s.stderr,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()
	s.logger.Debug("repl session started", "session", s.name)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.Reset()
			rl.SetPrompt(s.Prompt())
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if !s.Input(ctx, line) {
			break
		}
		rl.SetPrompt(s.Prompt())
	}
	s.logger.Debug("repl session ended", "session", s.name)
	fmt.Fprintln(s.stdout, "Goodbye!")
	return nil
}
