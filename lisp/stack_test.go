package lisp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallStack(t *testing.T) {
	s := &CallStack{MaxHeight: 2}
	assert.Nil(t, s.Top())
	require.Nil(t, s.Push("a"))
	require.Nil(t, s.Push("b"))
	assert.Equal(t, 2, s.Height())

	lerr := s.Push("c")
	require.NotNil(t, lerr)
	assert.Equal(t, ErrnoStackOverflow, lerr.Errno)
	assert.Equal(t, "stack overflow: maximum height 2 exceeded calling c", lerr.Str)
	assert.Equal(t, 2, s.Height())

	s.TailCall("c")
	s.TailCall("d")
	assert.Equal(t, CallFrame{Name: "d", Elided: 2}, *s.Top())

	cp := s.Copy()
	assert.Equal(t, CallFrame{Name: "d", Elided: 2}, s.Pop())
	assert.Equal(t, 1, s.Height())
	assert.Equal(t, 2, cp.Height())

	s.Reset()
	assert.Equal(t, 0, s.Height())
	assert.Panics(t, func() { s.Pop() })
	assert.Panics(t, func() { s.TailCall("x") })
}

func TestCallStack_unlimited(t *testing.T) {
	s := &CallStack{}
	for i := 0; i < 2*DefaultMaxStackHeight; i++ {
		require.Nil(t, s.Push("f"))
	}
	assert.Equal(t, 2*DefaultMaxStackHeight, s.Height())
}

func TestCallStack_DebugPrint(t *testing.T) {
	s := &CallStack{}
	s.Push("main")
	s.Push("loop")
	s.TailCall("loop")
	s.TailCall("loop")
	var buf bytes.Buffer
	_, err := s.DebugPrint(&buf)
	require.NoError(t, err)
	assert.Equal(t, `Stack Trace [2 frames -- entrypoint last]:
  height 1: loop [2 tail calls]
  height 0: main
`, buf.String())
}
