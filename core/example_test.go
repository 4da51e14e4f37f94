// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"

	"github.com/katalvlaran/harness/core"
)

// ExampleStore_FindPath routes across a trunk with one branch point.
func ExampleStore_FindPath() {
	s := core.NewStore()
	c1, _ := s.AddNode(core.ConnectorKind{ConnectorID: "C1"}, core.Point{X: 0, Y: 0})
	c2, _ := s.AddNode(core.ConnectorKind{ConnectorID: "C2"}, core.Point{X: 300, Y: 100})
	bp, _ := s.AddNode(core.BranchPointKind{Type: core.BranchSplit}, core.Point{X: 80, Y: -20})
	_, _ = s.AddSegment(c1, bp)
	_, _ = s.AddSegment(bp, c2)

	fmt.Println(s.FindPath(c1, c2))
	// Output:
	// [SEG_1 SEG_2]
}
