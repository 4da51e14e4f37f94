// SPDX-License-Identifier: MIT

package builder

import (
	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/core"
)

// MinChainConnectors is the smallest connector count Chain accepts.
const MinChainConnectors = 2

// Chain returns a Constructor placing n connectors one spacing apart along
// the x axis and wiring each to the next.
func Chain(n int) Constructor {
	return func(d *harness.Document, cfg builderConfig) error {
		_, err := chain(d, cfg, methodChain, n)
		return err
	}
}

// BundleChain returns a Constructor for Chain(n) with one bundle laid from
// every connector to the next.
func BundleChain(n int) Constructor {
	return func(d *harness.Document, cfg builderConfig) error {
		ids, err := chain(d, cfg, methodBundleChain, n)
		if err != nil {
			return err
		}
		for i := 1; i < len(ids); i++ {
			a, _ := d.Connector(ids[i-1])
			b, _ := d.Connector(ids[i])
			if _, err := d.AddBundle(a.Position, b.Position); err != nil {
				return failed(methodBundleChain, "AddBundle", err)
			}
		}
		return nil
	}
}

func chain(d *harness.Document, cfg builderConfig, method string, n int) ([]string, error) {
	if n < MinChainConnectors {
		return nil, builderErrorf(method, "n=%d < %d: %w", n, MinChainConnectors, ErrTooFewConnectors)
	}
	ids, err := placeAll(d, cfg, method, n, func(i int) core.Point {
		return core.Point{X: float64(i) * cfg.spacing}
	})
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		if err := connect(d, cfg, method, i-1, ids[i-1], ids[i]); err != nil {
			return nil, err
		}
	}
	return ids, nil
}
