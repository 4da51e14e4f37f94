// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/katalvlaran/harness"
)

// RandomWires returns a Constructor adding m wires between distinct
// connectors drawn uniformly from the document, in placement order. Draws
// come from cfg.rng only, so a fixed seed fixes the result.
func RandomWires(m int) Constructor {
	return func(d *harness.Document, cfg builderConfig) error {
		if cfg.rng == nil {
			return builderErrorf(methodRandomWires, "%w", ErrNeedRandSource)
		}
		if m < 1 {
			return builderErrorf(methodRandomWires, "m=%d < 1: %w", m, ErrTooFewWires)
		}
		conns := d.Connectors()
		if len(conns) < 2 {
			return builderErrorf(methodRandomWires, "%d connectors placed: %w", len(conns), ErrTooFewConnectors)
		}
		n := len(conns)
		for i := 0; i < m; i++ {
			a := cfg.rng.Intn(n)
			b := cfg.rng.Intn(n - 1)
			if b >= a {
				b++
			}
			if err := connect(d, cfg, methodRandomWires, i, conns[a].ID, conns[b].ID); err != nil {
				return err
			}
		}
		return nil
	}
}
