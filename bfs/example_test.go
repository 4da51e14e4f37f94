// SPDX-License-Identifier: MIT

package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/harness/bfs"
)

// ExampleBFS_fewestHops finds the short route through a small harness:
// a direct trunk beats a detour over two splices.
func ExampleBFS_fewestHops() {
	g := newArcList()
	g.link("SEG_1", "CONN_C1", "BP_1")
	g.link("SEG_2", "BP_1", "J_1")
	g.link("SEG_3", "J_1", "CONN_C2")
	g.link("SEG_4", "BP_1", "CONN_C2")

	res, err := bfs.BFS(g, "CONN_C1", bfs.WithStopAt("CONN_C2"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	arcs, _ := res.ArcsTo("CONN_C2")
	fmt.Println(arcs)
	// Output:
	// [SEG_1 SEG_4]
}
