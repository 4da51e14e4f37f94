// SPDX-License-Identifier: MIT

package command

import (
	"log/slog"
)

// Reporter receives the status line after each push, undo and redo.
// scene.Scene satisfies it.
type Reporter interface {
	ReportStatus(text string)
}

// Op names a history transition reported to an Observer.
type Op string

const (
	OpPush  Op = "push"
	OpMerge Op = "merge"
	OpUndo  Op = "undo"
	OpRedo  Op = "redo"
	OpAbort Op = "abort"
)

// Observer is notified after every history transition with the cursor
// position that resulted.
type Observer func(op Op, cmd Command, index int)

// Stack is the undo/redo history of one document.
type Stack struct {
	cmds  []Command
	index int // commands[:index] are applied
	clean int // index at last SetClean, -1 when unreachable

	macros    []*Compound
	replaying bool

	reporter Reporter
	observer Observer
	log      *slog.Logger
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithReporter sends status lines to r.
func WithReporter(r Reporter) StackOption {
	return func(s *Stack) { s.reporter = r }
}

// WithObserver registers fn for history transitions.
func WithObserver(fn Observer) StackOption {
	return func(s *Stack) { s.observer = fn }
}

// WithLogger sets the logger used for rejected pushes.
func WithLogger(l *slog.Logger) StackOption {
	return func(s *Stack) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStack returns an empty, clean Stack.
func NewStack(opts ...StackOption) *Stack {
	s := &Stack{log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push runs cmd.Redo and records cmd. Inside a macro the command joins the
// macro instead of the history. Pushing truncates the redo tail and tries
// to merge cmd into the most recent command.
func (s *Stack) Push(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if s.replaying {
		s.log.Warn("push rejected during replay", slog.String("command", cmd.Description()))
		return ErrReentrantPush
	}
	s.replay(cmd.Redo)
	if n := len(s.macros); n > 0 {
		s.macros[n-1].Add(cmd)
		return nil
	}
	s.commit(cmd, true)
	return nil
}

func (s *Stack) commit(cmd Command, mergeable bool) {
	if s.index < len(s.cmds) {
		for i := s.index; i < len(s.cmds); i++ {
			s.cmds[i] = nil
		}
		s.cmds = s.cmds[:s.index]
		if s.clean > s.index {
			s.clean = -1
		}
	}
	if mergeable && s.index > 0 {
		if m, ok := s.cmds[s.index-1].(Merger); ok && m.MergeWith(cmd) {
			if s.clean == s.index {
				s.clean = -1
			}
			s.status("Performed: " + cmd.Description())
			s.notify(OpMerge, cmd)
			return
		}
	}
	s.cmds = append(s.cmds, cmd)
	s.index++
	s.status("Performed: " + cmd.Description())
	s.notify(OpPush, cmd)
}

// Undo reverts the most recent applied command. Returns false when there
// is nothing to undo, a macro is open, or a replay is in progress.
func (s *Stack) Undo() bool {
	if s.replaying || len(s.macros) > 0 || s.index == 0 {
		return false
	}
	cmd := s.cmds[s.index-1]
	s.replay(cmd.Undo)
	s.index--
	s.status("Undo: " + cmd.Description())
	s.notify(OpUndo, cmd)
	return true
}

// Redo re-applies the most recently undone command. Returns false when
// there is nothing to redo, a macro is open, or a replay is in progress.
func (s *Stack) Redo() bool {
	if s.replaying || len(s.macros) > 0 || s.index == len(s.cmds) {
		return false
	}
	cmd := s.cmds[s.index]
	s.replay(cmd.Redo)
	s.index++
	s.status("Redo: " + cmd.Description())
	s.notify(OpRedo, cmd)
	return true
}

// BeginMacro opens a group; every push until the matching EndMacro joins it.
// Macros nest.
func (s *Stack) BeginMacro(desc string) error {
	if s.replaying {
		return ErrReentrantPush
	}
	s.macros = append(s.macros, NewCompound(desc))
	return nil
}

// EndMacro closes the innermost macro. A closed outermost macro becomes one
// history entry; an empty one is dropped.
func (s *Stack) EndMacro() error {
	n := len(s.macros)
	if n == 0 {
		return ErrNoMacro
	}
	m := s.macros[n-1]
	s.macros = s.macros[:n-1]
	if m.Len() == 0 {
		return nil
	}
	if n > 1 {
		s.macros[n-2].Add(m)
		return nil
	}
	s.commit(m, false)
	return nil
}

// AbortMacro closes the innermost macro, undoing everything collected in it.
func (s *Stack) AbortMacro() error {
	n := len(s.macros)
	if n == 0 {
		return ErrNoMacro
	}
	m := s.macros[n-1]
	s.macros = s.macros[:n-1]
	s.replay(m.Undo)
	s.notify(OpAbort, m)
	return nil
}

// InMacro reports whether a macro is open.
func (s *Stack) InMacro() bool { return len(s.macros) > 0 }

// Clear drops the whole history and any open macros; the stack becomes clean.
func (s *Stack) Clear() {
	s.cmds = nil
	s.index = 0
	s.clean = 0
	s.macros = nil
}

// SetClean marks the current position as saved.
func (s *Stack) SetClean() { s.clean = s.index }

// IsClean reports whether the cursor is at the saved position.
func (s *Stack) IsClean() bool { return s.index == s.clean }

// IsDirty reports whether there are changes since the last SetClean.
func (s *Stack) IsDirty() bool { return !s.IsClean() }

// CanUndo reports whether Undo would do something.
func (s *Stack) CanUndo() bool { return !s.replaying && len(s.macros) == 0 && s.index > 0 }

// CanRedo reports whether Redo would do something.
func (s *Stack) CanRedo() bool {
	return !s.replaying && len(s.macros) == 0 && s.index < len(s.cmds)
}

// UndoText returns the description of the command Undo would revert.
func (s *Stack) UndoText() string {
	if s.index == 0 {
		return ""
	}
	return s.cmds[s.index-1].Description()
}

// RedoText returns the description of the command Redo would re-apply.
func (s *Stack) RedoText() string {
	if s.index == len(s.cmds) {
		return ""
	}
	return s.cmds[s.index].Description()
}

// Index returns the cursor: the number of applied commands.
func (s *Stack) Index() int { return s.index }

// Len returns the number of commands in the history.
func (s *Stack) Len() int { return len(s.cmds) }

// History returns the descriptions of all commands, oldest first.
func (s *Stack) History() []string {
	out := make([]string, len(s.cmds))
	for i, c := range s.cmds {
		out[i] = c.Description()
	}
	return out
}

func (s *Stack) replay(fn func()) {
	s.replaying = true
	defer func() { s.replaying = false }()
	fn()
}

func (s *Stack) status(text string) {
	if s.reporter != nil {
		s.reporter.ReportStatus(text)
	}
}

func (s *Stack) notify(op Op, cmd Command) {
	if s.observer != nil {
		s.observer(op, cmd, s.index)
	}
}
