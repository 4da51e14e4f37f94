// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"
)

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

// BFS runs breadth-first search on g starting from startID,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, ErrNeighbors for graph failures,
// or any user-supplied hook error.
func BFS(g Graph, startID string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		visited: make(map[string]bool),
		res: &Result{
			Depth:  make(map[string]int),
			Parent: make(map[string]string),
			Via:    make(map[string]string),
		},
	}
	w.enqueue(startID, 0, "", "")

	return w.res, w.loop()
}

// enqueue marks id visited at depth d, records how it was reached,
// calls OnEnqueue and adds it to the queue.
func (w *walker) enqueue(id string, d int, parent, via string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
		w.res.Via[id] = via
	}
	w.opts.OnEnqueue(id, d)
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, stop vertex, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		if w.opts.StopAt != "" && item.id == w.opts.StopAt {
			return nil
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.id, item.depth)
	return item
}

func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.id)
	if err := w.opts.OnVisit(item.id, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
	}
	return nil
}

// enqueueNeighbors expands the arcs of item in graph order, applying the
// filter and MaxDepth, and enqueues each unseen endpoint.
func (w *walker) enqueueNeighbors(item queueItem) error {
	arcs, err := w.graph.Arcs(item.id)
	if err != nil {
		return fmt.Errorf("%w: failed to get arcs of %q: %v", ErrNeighbors, item.id, err)
	}
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	for _, arc := range arcs {
		if w.visited[arc.To] {
			continue
		}
		if !w.opts.FilterNeighbor(item.id, arc) {
			continue
		}
		w.enqueue(arc.To, next, item.id, arc.Label)
	}
	return nil
}
