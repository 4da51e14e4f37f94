// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/harness/core"
)

// Props is the catalogue data of a connector.
type Props struct {
	Name         string
	PartNumber   string
	Manufacturer string
}

// Connector is a placed connector. Its position is the position of its
// topology node; an empty Pins list accepts any pin name.
type Connector struct {
	ID       string
	Position core.Point
	Rotation float64
	Pins     []string
	Props    Props

	seq uint64
}

// HasPin reports whether pin may be used on c.
func (c Connector) HasPin(pin string) bool {
	return len(c.Pins) == 0 || slices.Contains(c.Pins, pin)
}

// Node returns the topology node id of c.
func (c Connector) Node() core.NodeID { return core.ConnectorNodeID(c.ID) }

// Clone returns a detached copy of c.
func (c Connector) Clone() Connector {
	c.Pins = append([]string(nil), c.Pins...)
	return c
}

// connectorSet keeps connectors in placement order; a connector removed
// and put back returns to its place.
type connectorSet struct {
	byID map[string]*Connector
	seq  uint64
}

func newConnectorSet() *connectorSet {
	return &connectorSet{byID: make(map[string]*Connector)}
}

func (s *connectorSet) add(c Connector) error {
	if _, ok := s.byID[c.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateConnector, c.ID)
	}
	c = c.Clone()
	if c.seq == 0 {
		s.seq++
		c.seq = s.seq
	}
	s.byID[c.ID] = &c
	return nil
}

func (s *connectorSet) remove(id string) (Connector, error) {
	c, ok := s.byID[id]
	if !ok {
		return Connector{}, fmt.Errorf("%w: %q", ErrUnknownConnector, id)
	}
	delete(s.byID, id)
	return c.Clone(), nil
}

func (s *connectorSet) update(c Connector) error {
	cur, ok := s.byID[c.ID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownConnector, c.ID)
	}
	next := c.Clone()
	next.seq = cur.seq
	s.byID[c.ID] = &next
	return nil
}

func (s *connectorSet) get(id string) (Connector, bool) {
	c, ok := s.byID[id]
	if !ok {
		return Connector{}, false
	}
	return c.Clone(), true
}

func (s *connectorSet) all() []Connector {
	out := make([]Connector, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
