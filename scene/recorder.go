// SPDX-License-Identifier: MIT

package scene

// Event is one recorded scene update.
type Event struct {
	Op   string // "insert", "remove" or "status"
	Kind EntityKind
	ID   string
	Text string
}

// Recorder keeps every update in order and tracks which visuals are
// currently shown. Tests use it to observe engine side effects.
type Recorder struct {
	Events  []Event
	visible map[string]EntityKind
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{visible: make(map[string]EntityKind)}
}

func (r *Recorder) InsertVisual(kind EntityKind, id string) {
	r.Events = append(r.Events, Event{Op: "insert", Kind: kind, ID: id})
	r.visible[id] = kind
}

func (r *Recorder) RemoveVisual(id string) {
	r.Events = append(r.Events, Event{Op: "remove", ID: id})
	delete(r.visible, id)
}

func (r *Recorder) ReportStatus(text string) {
	r.Events = append(r.Events, Event{Op: "status", Text: text})
}

// Visible reports whether id is currently shown.
func (r *Recorder) Visible(id string) bool {
	_, ok := r.visible[id]
	return ok
}

// VisibleCount returns how many visuals of kind are shown.
func (r *Recorder) VisibleCount(kind EntityKind) int {
	n := 0
	for _, k := range r.visible {
		if k == kind {
			n++
		}
	}
	return n
}

// Statuses returns every reported status line in order.
func (r *Recorder) Statuses() []string {
	var out []string
	for _, e := range r.Events {
		if e.Op == "status" {
			out = append(out, e.Text)
		}
	}
	return out
}

// LastStatus returns the most recent status line, or "".
func (r *Recorder) LastStatus() string {
	s := r.Statuses()
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}
