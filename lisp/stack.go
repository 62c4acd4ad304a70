package lisp

import (
	"bytes"
	"fmt"
	"io"
)

// DefaultMaxStackHeight is the maximum call stack height of an environment
// that was not configured with WithMaximumStackHeight.
const DefaultMaxStackHeight = 10000

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight is the maximum number of frames that may be pushed onto the
	// stack.  Frames replaced by tail calls do not count against it.  A
	// MaxHeight less than one disables the limit.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name string
	// Elided counts the tail calls which have reused this frame.
	Elided int
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	if s == nil {
		return nil
	}
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame for the named function onto s.  If the push
// would exceed s.MaxHeight the stack is left unchanged and an LError is
// returned.  Otherwise Push returns nil.
func (s *CallStack) Push(name string) *LVal {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		lerr := Errorf(ErrnoStackOverflow, "stack overflow: maximum height %d exceeded calling %s", s.MaxHeight, name)
		lerr.Stack = s.Copy()
		return lerr
	}
	s.Frames = append(s.Frames, CallFrame{Name: name})
	return nil
}

// TailCall replaces the top frame with a frame for the named function,
// recording the replaced frame as elided.
func (s *CallStack) TailCall(name string) {
	top := s.Top()
	if top == nil {
		panic("tail call on an empty stack")
	}
	top.Name = name
	top.Elided++
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// Reset removes all frames from the stack.
func (s *CallStack) Reset() {
	for i := range s.Frames {
		s.Frames[i] = CallFrame{}
	}
	s.Frames = s.Frames[:0]
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		var mod bytes.Buffer
		if f.Elided > 0 {
			fmt.Fprintf(&mod, " [%d tail calls]", f.Elided)
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s%s\n", indent, i, f.Name, mod.String())
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
