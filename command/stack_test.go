// SPDX-License-Identifier: MIT

package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/harness/command"
	"github.com/katalvlaran/harness/scene"
)

// setValue assigns a new value to *target; consecutive sets of the same
// target merge, keeping the first old value.
type setValue struct {
	command.Base
	target   *int
	old, new int
}

func newSet(target *int, v int) *setValue {
	return &setValue{Base: command.NewBase("Set Value", false), target: target, old: *target, new: v}
}

func (c *setValue) Undo() { *c.target = c.old }

func (c *setValue) Redo() {
	if c.SkipRedo() {
		return
	}
	*c.target = c.new
}

func (c *setValue) MergeWith(next command.Command) bool {
	o, ok := next.(*setValue)
	if !ok || o.target != c.target {
		return false
	}
	c.new = o.new
	return true
}

// logCmd appends its name to a shared log on undo/redo.
func logCmd(log *[]string, name string, noop bool) *command.Func {
	return command.NewFunc(name, noop,
		func() { *log = append(*log, "undo "+name) },
		func() { *log = append(*log, "redo "+name) },
	)
}

type StackSuite struct {
	suite.Suite
	rec   *scene.Recorder
	stack *command.Stack
	value int
}

func (s *StackSuite) SetupTest() {
	s.rec = scene.NewRecorder()
	s.stack = command.NewStack(command.WithReporter(s.rec))
	s.value = 0
}

func (s *StackSuite) TestUndoRedoRoundTrip() {
	require.NoError(s.T(), s.stack.Push(newSet(&s.value, 5)))
	s.Equal(5, s.value, "push applies a command whose first redo is not a no-op")
	s.Equal("Performed: Set Value", s.rec.LastStatus())

	s.True(s.stack.Undo())
	s.Equal(0, s.value)
	s.Equal("Undo: Set Value", s.rec.LastStatus())
	s.True(s.stack.Redo())
	s.Equal(5, s.value)
	s.Equal("Redo: Set Value", s.rec.LastStatus())

	s.False(s.stack.Redo(), "nothing left to redo")
	s.True(s.stack.Undo())
	s.False(s.stack.Undo(), "nothing left to undo")
	s.Equal(0, s.value)
}

func (s *StackSuite) TestFirstRedoNoop() {
	var log []string
	require.NoError(s.T(), s.stack.Push(logCmd(&log, "A", true)))
	s.Empty(log, "first redo skipped")
	s.stack.Undo()
	s.stack.Redo()
	s.Equal([]string{"undo A", "redo A"}, log)
}

func (s *StackSuite) TestPushTruncatesRedoTail() {
	a, b := newSet(&s.value, 1), 0
	require.NoError(s.T(), s.stack.Push(a))
	other := 0
	require.NoError(s.T(), s.stack.Push(newSet(&other, 2)))
	s.stack.Undo()
	s.True(s.stack.CanRedo())
	require.NoError(s.T(), s.stack.Push(newSet(&b, 3)))
	s.False(s.stack.CanRedo())
	s.Equal(2, s.stack.Len())
}

func (s *StackSuite) TestMerge() {
	require.NoError(s.T(), s.stack.Push(newSet(&s.value, 1)))
	require.NoError(s.T(), s.stack.Push(newSet(&s.value, 2)))
	require.NoError(s.T(), s.stack.Push(newSet(&s.value, 3)))
	s.Equal(1, s.stack.Len(), "consecutive sets of one target merge")
	s.Equal(3, s.value)

	s.stack.Undo()
	s.Equal(0, s.value, "merged command restores the original value")
	s.stack.Redo()
	s.Equal(3, s.value, "and re-applies the final value")
}

func (s *StackSuite) TestMacro() {
	var log []string
	require.NoError(s.T(), s.stack.BeginMacro("Delete Connector"))
	require.NoError(s.T(), s.stack.Push(logCmd(&log, "wire", false)))
	require.NoError(s.T(), s.stack.Push(logCmd(&log, "connector", false)))
	s.False(s.stack.Undo(), "undo is disabled while a macro is open")
	require.NoError(s.T(), s.stack.EndMacro())

	s.Equal(1, s.stack.Len())
	s.Equal("Delete Connector", s.stack.UndoText())
	s.Equal("Performed: Delete Connector", s.rec.LastStatus())
	log = nil
	s.stack.Undo()
	s.Equal([]string{"undo connector", "undo wire"}, log)
	log = nil
	s.stack.Redo()
	s.Equal([]string{"redo wire", "redo connector"}, log)

	s.ErrorIs(s.stack.EndMacro(), command.ErrNoMacro)
}

func (s *StackSuite) TestNestedAndEmptyMacros() {
	var log []string
	require.NoError(s.T(), s.stack.BeginMacro("outer"))
	require.NoError(s.T(), s.stack.BeginMacro("inner"))
	require.NoError(s.T(), s.stack.Push(logCmd(&log, "x", true)))
	require.NoError(s.T(), s.stack.EndMacro())
	require.NoError(s.T(), s.stack.EndMacro())
	s.Equal([]string{"outer"}, s.stack.History())

	require.NoError(s.T(), s.stack.BeginMacro("empty"))
	require.NoError(s.T(), s.stack.EndMacro())
	s.Equal(1, s.stack.Len(), "empty macros are dropped")
}

func (s *StackSuite) TestAbortMacro() {
	var log []string
	require.NoError(s.T(), s.stack.BeginMacro("Route"))
	require.NoError(s.T(), s.stack.Push(logCmd(&log, "a", true)))
	require.NoError(s.T(), s.stack.Push(logCmd(&log, "b", true)))
	require.NoError(s.T(), s.stack.AbortMacro())
	s.Equal([]string{"undo b", "undo a"}, log)
	s.Equal(0, s.stack.Len())
	s.False(s.stack.InMacro())
	s.ErrorIs(s.stack.AbortMacro(), command.ErrNoMacro)
}

func (s *StackSuite) TestCleanState() {
	s.False(s.stack.IsDirty())
	require.NoError(s.T(), s.stack.Push(newSet(&s.value, 1)))
	s.True(s.stack.IsDirty())
	s.stack.SetClean()
	s.False(s.stack.IsDirty())
	s.stack.Undo()
	s.True(s.stack.IsDirty())
	s.stack.Redo()
	s.False(s.stack.IsDirty())

	// truncating past the clean point leaves the document dirty
	s.stack.Undo()
	other := 0
	require.NoError(s.T(), s.stack.Push(newSet(&other, 9)))
	s.stack.Undo()
	s.True(s.stack.IsDirty())

	s.stack.Clear()
	s.False(s.stack.IsDirty())
	s.Equal(0, s.stack.Len())
}

func (s *StackSuite) TestMergeIntoCleanCommandIsDirty() {
	require.NoError(s.T(), s.stack.Push(newSet(&s.value, 1)))
	s.stack.SetClean()
	require.NoError(s.T(), s.stack.Push(newSet(&s.value, 2)))
	s.Equal(1, s.stack.Len())
	s.True(s.stack.IsDirty())
}

func (s *StackSuite) TestReentrantPushRejected() {
	var pushErr error
	var inner []string
	cmd := command.NewFunc("outer", false,
		func() { pushErr = s.stack.Push(logCmd(&inner, "inner", false)) },
		func() { pushErr = s.stack.Push(logCmd(&inner, "inner", false)) },
	)
	require.NoError(s.T(), s.stack.Push(cmd))
	s.ErrorIs(pushErr, command.ErrReentrantPush)
	s.Empty(inner)
	s.Equal(1, s.stack.Len())

	nested := true
	undoer := command.NewFunc("undoer", true, func() { nested = s.stack.Undo() }, func() {})
	require.NoError(s.T(), s.stack.Push(undoer))
	s.stack.Undo()
	s.False(nested, "nested undo during replay is refused")
}

func (s *StackSuite) TestErrorsAndTexts() {
	s.ErrorIs(s.stack.Push(nil), command.ErrNilCommand)
	s.Equal("", s.stack.UndoText())
	s.Equal("", s.stack.RedoText())
	require.NoError(s.T(), s.stack.Push(newSet(&s.value, 1)))
	s.stack.Undo()
	s.Equal("Set Value", s.stack.RedoText())
	s.Equal(0, s.stack.Index())
}

func TestStackSuite(t *testing.T) {
	suite.Run(t, new(StackSuite))
}

// TestCompound_Order checks reverse undo and forward redo.
func TestCompound_Order(t *testing.T) {
	var log []string
	c := command.NewCompound("group", logCmd(&log, "node", false), nil, logCmd(&log, "segment", false))
	require.Equal(t, 2, c.Len())
	c.Undo()
	c.Redo()
	assert.Equal(t, []string{"undo segment", "undo node", "redo node", "redo segment"}, log)
	assert.Len(t, c.Children(), 2)
}

func TestObserver(t *testing.T) {
	var ops []command.Op
	st := command.NewStack(command.WithObserver(func(op command.Op, _ command.Command, _ int) {
		ops = append(ops, op)
	}))
	v := 0
	require.NoError(t, st.Push(newSet(&v, 1)))
	require.NoError(t, st.Push(newSet(&v, 2)))
	st.Undo()
	st.Redo()
	assert.Equal(t, []command.Op{command.OpPush, command.OpMerge, command.OpUndo, command.OpRedo}, ops)
}

func TestBase(t *testing.T) {
	b := command.NewBase("x", true)
	assert.True(t, b.FirstRedoIsNoop())
	assert.True(t, b.SkipRedo())
	assert.False(t, b.SkipRedo())
	assert.False(t, b.Created().IsZero())
}
