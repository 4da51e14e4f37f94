// SPDX-License-Identifier: MIT

package edit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/scene"
	"github.com/katalvlaran/harness/topology"
)

// Editor builds primitives bound to one topology manager and scene.
type Editor struct {
	topo  *topology.Manager
	scene scene.Scene
	log   *slog.Logger
}

// New returns an Editor. A nil scene discards visuals; a nil logger falls
// back to the manager's.
func New(m *topology.Manager, sc scene.Scene, log *slog.Logger) *Editor {
	if sc == nil {
		sc = scene.Nop{}
	}
	if log == nil {
		log = m.Logger()
	}
	return &Editor{topo: m, scene: sc, log: log}
}

// Topology returns the manager the editor works on.
func (e *Editor) Topology() *topology.Manager { return e.topo }

// Scene returns the scene the editor reports to.
func (e *Editor) Scene() scene.Scene { return e.scene }

func (e *Editor) store() *core.Store { return e.topo.Store() }

// stale logs a replay that found its target gone.
func (e *Editor) stale(cmd string, err error) {
	e.log.Warn("stale reference during replay", slog.String("command", cmd), slog.Any("error", err))
}

// replayErr routes an error seen during Undo/Redo: vanished or duplicated
// targets are stale, anything else means the history is broken.
func (e *Editor) replayErr(cmd string, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, core.ErrDuplicateID),
		errors.Is(err, core.ErrNodeNotFound),
		errors.Is(err, core.ErrSegmentNotFound),
		errors.Is(err, core.ErrBundleNotFound),
		errors.Is(err, core.ErrNodeInUse),
		errors.Is(err, core.ErrSegmentInUse),
		errors.Is(err, topology.ErrStaleReference):
		e.stale(cmd, err)
	default:
		panic(fmt.Sprintf("edit: %s: %v", cmd, err))
	}
}
