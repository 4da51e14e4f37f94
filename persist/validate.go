// SPDX-License-Identifier: MIT

package persist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("persist: invalid snapshot")

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("pinref", func(fl validator.FieldLevel) bool {
		_, err := wire.ParsePinRef(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("origin", func(fl validator.FieldLevel) bool {
		_, err := core.ParseOrigin(fl.Field().String())
		return err == nil
	})
}

// Validate checks field constraints and cross references: unique ids per
// collection, wire ends on known connectors and pins, branch ends and
// bundle anchors on known nodes, wire paths over known branches, branch
// wire lists consistent with those paths, overlay sources and bundle
// members naming known wires. Connector ids and pin names carry no '.'.
func (s *Snapshot) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	var problems []string
	fail := func(format string, args ...any) { problems = append(problems, fmt.Sprintf(format, args...)) }

	pins := make(map[string]map[string]bool, len(s.Connectors))
	for _, c := range s.Connectors {
		if _, dup := pins[c.ID]; dup {
			fail("duplicate connector %q", c.ID)
		}
		if strings.Contains(c.ID, ".") {
			fail("connector %q has a '.' in its id", c.ID)
		}
		set := make(map[string]bool, len(c.Pins))
		for _, p := range c.Pins {
			if strings.Contains(p, ".") {
				fail("connector %q pin %q has a '.'", c.ID, p)
			}
			set[p] = true
		}
		pins[c.ID] = set
	}

	nodes := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if nodes[n.ID] {
			fail("duplicate node %q", n.ID)
		}
		nodes[n.ID] = true
		if n.Kind == "connector" {
			if _, ok := pins[n.Connector]; !ok {
				fail("node %q names unknown connector %q", n.ID, n.Connector)
			}
		}
	}
	// connector nodes are implied when not listed
	for id := range pins {
		nodes[string(core.ConnectorNodeID(id))] = true
	}

	branches := make(map[string]bool, len(s.Branches))
	for _, b := range s.Branches {
		if branches[b.ID] {
			fail("duplicate branch %q", b.ID)
		}
		branches[b.ID] = true
		for _, n := range []string{b.Start, b.End} {
			if !nodes[n] {
				fail("branch %q uses unknown node %q", b.ID, n)
			}
		}
	}

	wires := make(map[string]bool, len(s.Wires))
	paths := make(map[string]map[string]bool, len(s.Wires))
	for _, w := range s.Wires {
		if wires[w.ID] {
			fail("duplicate wire %q", w.ID)
		}
		wires[w.ID] = true
		for _, end := range []string{w.From, w.To} {
			ref, _ := wire.ParsePinRef(end)
			set, ok := pins[ref.Connector]
			switch {
			case !ok:
				fail("wire %q ends on unknown connector %q", w.ID, ref.Connector)
			case len(set) > 0 && !set[ref.Pin]:
				fail("wire %q ends on unknown pin %q", w.ID, end)
			}
		}
		paths[w.ID] = make(map[string]bool, len(w.Segments))
		for _, seg := range w.Segments {
			if !branches[seg] {
				fail("wire %q uses unknown branch %q", w.ID, seg)
			}
			paths[w.ID][seg] = true
		}
	}

	for _, b := range s.Branches {
		for _, wid := range b.Wires {
			if !wires[wid] {
				fail("branch %q lists unknown wire %q", b.ID, wid)
			} else if !paths[wid][b.ID] {
				fail("branch %q lists wire %q whose path does not use it", b.ID, wid)
			}
		}
	}

	for _, w := range s.Wires {
		for _, src := range w.Sources {
			if !wires[src] || src == w.ID {
				fail("wire %q lists unknown source %q", w.ID, src)
			}
		}
	}

	seen := make(map[string]bool, len(s.Bundles))
	for _, b := range s.Bundles {
		if seen[b.ID] {
			fail("duplicate bundle %q", b.ID)
		}
		seen[b.ID] = true
		for _, n := range []string{b.StartNode, b.EndNode} {
			if n != "" && !nodes[n] {
				fail("bundle %q anchors unknown node %q", b.ID, n)
			}
		}
		for _, wid := range b.Wires {
			if !wires[wid] {
				fail("bundle %q lists unknown wire %q", b.ID, wid)
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
