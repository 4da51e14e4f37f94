// SPDX-License-Identifier: MIT

package builder_test

import (
	"fmt"

	"github.com/katalvlaran/harness/builder"
)

func ExampleBuildDocument() {
	d, err := builder.BuildDocument(nil, nil, builder.HubScenario())
	if err != nil {
		fmt.Println(err)
		return
	}
	rep, _ := d.AutoRoute()
	fmt.Println(len(d.Connectors()), "connectors")
	fmt.Println(rep.Routed, "wires routed through", rep.CreatedNodes)
	// Output:
	// 3 connectors
	// 4 wires routed through [BP_1]
}
