// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"time"
)

var (
	// ErrNilCommand is returned when pushing a nil command.
	ErrNilCommand = errors.New("command: nil command")

	// ErrReentrantPush is returned for pushes issued while a command replays.
	ErrReentrantPush = errors.New("command: push during replay")

	// ErrNoMacro is returned by EndMacro/AbortMacro without an open macro.
	ErrNoMacro = errors.New("command: no open macro")
)

// Command is one reversible edit.
type Command interface {
	Description() string
	Undo()
	Redo()
}

// Merger is implemented by commands that can absorb the next pushed command.
// MergeWith returns true when next was folded into the receiver.
type Merger interface {
	MergeWith(next Command) bool
}

// Base carries what every command has in common. Embed it by value and
// call SkipRedo at the top of Redo.
type Base struct {
	desc     string
	created  time.Time
	noopRedo bool
	pending  bool
}

// NewBase returns a Base. firstRedoIsNoop marks a command whose effect was
// applied before it was pushed.
func NewBase(desc string, firstRedoIsNoop bool) Base {
	return Base{desc: desc, created: time.Now(), noopRedo: firstRedoIsNoop, pending: firstRedoIsNoop}
}

// Description returns the human-readable command text.
func (b *Base) Description() string { return b.desc }

// Created returns when the command was built.
func (b *Base) Created() time.Time { return b.created }

// FirstRedoIsNoop reports the flag the command was built with.
func (b *Base) FirstRedoIsNoop() bool { return b.noopRedo }

// SkipRedo reports true exactly once for a command built with
// firstRedoIsNoop, and false on every other call.
func (b *Base) SkipRedo() bool {
	if b.pending {
		b.pending = false
		return true
	}
	return false
}

// Func is a command built from two closures.
type Func struct {
	Base
	undo, redo func()
}

// NewFunc returns a command running undo and redo.
func NewFunc(desc string, firstRedoIsNoop bool, undo, redo func()) *Func {
	return &Func{Base: NewBase(desc, firstRedoIsNoop), undo: undo, redo: redo}
}

func (f *Func) Undo() { f.undo() }

func (f *Func) Redo() {
	if f.SkipRedo() {
		return
	}
	f.redo()
}

// Compound is an ordered group of commands replayed as one.
// Children can only be appended, so replay order always mirrors build order.
type Compound struct {
	Base
	children []Command
}

// NewCompound returns a Compound holding children in order.
func NewCompound(desc string, children ...Command) *Compound {
	c := &Compound{Base: NewBase(desc, false)}
	for _, ch := range children {
		c.Add(ch)
	}
	return c
}

// Add appends cmd; nil is ignored.
func (c *Compound) Add(cmd Command) {
	if cmd != nil {
		c.children = append(c.children, cmd)
	}
}

// Len returns the number of children.
func (c *Compound) Len() int { return len(c.children) }

// Children returns the children in build order.
func (c *Compound) Children() []Command { return append([]Command(nil), c.children...) }

// Undo undoes the children last to first.
func (c *Compound) Undo() {
	for i := len(c.children) - 1; i >= 0; i-- {
		c.children[i].Undo()
	}
}

// Redo redoes the children first to last.
func (c *Compound) Redo() {
	for _, ch := range c.children {
		ch.Redo()
	}
}
