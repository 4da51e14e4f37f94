// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

// placeAll places n connectors named by cfg.idFn, continuing the index after
// the connectors d already holds, at the positions given by at.
func placeAll(d *harness.Document, cfg builderConfig, method string, n int, at func(i int) core.Point) ([]string, error) {
	base := len(d.Connectors())
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := cfg.idFn(base + i)
		if err := d.AddConnector(harness.Connector{ID: id, Position: at(i)}); err != nil {
			return nil, failed(method, fmt.Sprintf("AddConnector(%s)", id), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// connect adds the i-th wire of a constructor between the first free pins
// of two connectors.
func connect(d *harness.Document, cfg builderConfig, method string, i int, from, to string) error {
	fp, ok := freePin(d, from)
	if !ok {
		return builderErrorf(method, "no free pin on %s: %w", from, ErrConstructFailed)
	}
	tp, ok := freePin(d, to)
	if !ok {
		return builderErrorf(method, "no free pin on %s: %w", to, ErrConstructFailed)
	}
	return addWire(d, cfg, method, i, wire.PinRef{Connector: from, Pin: fp}, wire.PinRef{Connector: to, Pin: tp})
}

func addWire(d *harness.Document, cfg builderConfig, method string, i int, from, to wire.PinRef) error {
	spec := wire.Spec{ID: nextWireID(d), From: from, To: to, Color: cfg.color(i)}
	if _, err := d.AddWire(spec); err != nil {
		return failed(method, fmt.Sprintf("AddWire(%s)", spec.ID), err)
	}
	return nil
}

// nextWireID returns the first free "W<n>" counting from the wire total.
func nextWireID(d *harness.Document) core.WireID {
	for n := len(d.Wires()) + 1; ; n++ {
		id := core.WireID("W" + strconv.Itoa(n))
		if _, ok := d.Wire(id); !ok {
			return id
		}
	}
}

// freePin returns the first pin of cid that no wire uses: the first unused
// listed pin, or the lowest unused number when the connector lists none.
func freePin(d *harness.Document, cid string) (string, bool) {
	used := make(map[string]bool)
	for _, w := range d.Wires() {
		for _, p := range []wire.PinRef{w.From, w.To} {
			if p.Connector == cid {
				used[p.Pin] = true
			}
		}
	}
	c, ok := d.Connector(cid)
	if !ok {
		return "", false
	}
	if len(c.Pins) > 0 {
		for _, p := range c.Pins {
			if !used[p] {
				return p, true
			}
		}
		return "", false
	}
	for n := 1; ; n++ {
		if p := strconv.Itoa(n); !used[p] {
			return p, true
		}
	}
}
