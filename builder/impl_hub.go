// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/harness"
	"github.com/katalvlaran/harness/core"
	"github.com/katalvlaran/harness/wire"
)

// HubScenario returns a Constructor for the shared-pin design: C1 carries
// four wire ends (pin 3 twice), so the auto-router makes it a hub and
// places one branch point next to it.
func HubScenario() Constructor {
	return func(d *harness.Document, cfg builderConfig) error {
		placed := []harness.Connector{
			{ID: "C1"},
			{ID: "C2", Position: core.Point{X: cfg.spacing}},
			{ID: "C3", Position: core.Point{X: cfg.spacing, Y: cfg.spacing}},
		}
		for _, c := range placed {
			if err := d.AddConnector(c); err != nil {
				return failed(methodHub, fmt.Sprintf("AddConnector(%s)", c.ID), err)
			}
		}
		ends := [][2]string{{"C1.1", "C2.1"}, {"C1.2", "C3.1"}, {"C1.3", "C2.2"}, {"C1.3", "C3.2"}}
		for i, e := range ends {
			from, _ := wire.ParsePinRef(e[0])
			to, _ := wire.ParsePinRef(e[1])
			if err := addWire(d, cfg, methodHub, i, from, to); err != nil {
				return err
			}
		}
		return nil
	}
}
