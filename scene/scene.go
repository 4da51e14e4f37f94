// SPDX-License-Identifier: MIT

// Package scene defines the collaborator the engine reports visual changes
// to. The engine never draws; it tells a Scene which entities appeared or
// disappeared and which status line to show.
package scene

import (
	"fmt"
	"log/slog"
)

// EntityKind classifies the entity behind a visual.
type EntityKind uint8

const (
	KindNode EntityKind = iota
	KindSegment
	KindWire
	KindBundle
	KindConnector
)

func (k EntityKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindSegment:
		return "segment"
	case KindWire:
		return "wire"
	case KindBundle:
		return "bundle"
	case KindConnector:
		return "connector"
	default:
		return fmt.Sprintf("EntityKind(%d)", uint8(k))
	}
}

// Scene receives visual updates from the engine.
type Scene interface {
	InsertVisual(kind EntityKind, id string)
	RemoveVisual(id string)
	ReportStatus(text string)
}

// Nop discards every update.
type Nop struct{}

func (Nop) InsertVisual(EntityKind, string) {}
func (Nop) RemoveVisual(string)             {}
func (Nop) ReportStatus(string)             {}

// Logger writes every update to a structured logger. The CLI uses it as
// its scene.
type Logger struct {
	Log *slog.Logger
}

// NewLogger returns a Logger writing to l, or to slog.Default when l is nil.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}
	return &Logger{Log: l}
}

func (s *Logger) InsertVisual(kind EntityKind, id string) {
	s.Log.Debug("scene insert", slog.String("kind", kind.String()), slog.String("id", id))
}

func (s *Logger) RemoveVisual(id string) {
	s.Log.Debug("scene remove", slog.String("id", id))
}

func (s *Logger) ReportStatus(text string) {
	s.Log.Info(text)
}
