// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/core"
)

// MinStarLeaves is the smallest leaf count Star accepts.
const MinStarLeaves = 1

// Star returns a Constructor for a hub wired to every leaf. The hub sits at
// the origin and the leaves form a column one spacing to its right,
// centred on the hub. Hub wires take hub pins 1,2,... in emission order:
// leaf by leaf, wiresPerLeaf at a time.
func Star(leaves, wiresPerLeaf int) Constructor {
	return func(d *harness.Document, cfg builderConfig) error {
		if leaves < MinStarLeaves {
			return builderErrorf(methodStar, "leaves=%d < %d: %w", leaves, MinStarLeaves, ErrTooFewConnectors)
		}
		if wiresPerLeaf < 1 {
			return builderErrorf(methodStar, "wiresPerLeaf=%d < 1: %w", wiresPerLeaf, ErrTooFewWires)
		}
		mid := float64(leaves-1) / 2
		ids, err := placeAll(d, cfg, methodStar, leaves+1, func(i int) core.Point {
			if i == 0 {
				return core.Point{}
			}
			return core.Point{X: cfg.spacing, Y: (float64(i-1) - mid) * cfg.spacing / 2}
		})
		if err != nil {
			return err
		}
		hub, n := ids[0], 0
		for _, leaf := range ids[1:] {
			for k := 0; k < wiresPerLeaf; k++ {
				if err := connect(d, cfg, methodStar, n, hub, leaf); err != nil {
					return err
				}
				n++
			}
		}
		return nil
	}
}
