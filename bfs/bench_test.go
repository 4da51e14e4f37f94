// SPDX-License-Identifier: MIT

package bfs_test

import (
	"testing"

	"github.com/katalvlaran/harness/bfs"
	"github.com/katalvlaran/harness/core"
)

// chainStore builds n junctions joined in a line and returns the store with
// its first and last node.
func chainStore(b *testing.B, n int) (*core.Store, core.NodeID, core.NodeID) {
	b.Helper()
	st := core.NewStore()
	ids := make([]core.NodeID, n)
	for i := range ids {
		id, err := st.AddNode(core.JunctionKind{}, core.Point{X: float64(i)})
		if err != nil {
			b.Fatal(err)
		}
		ids[i] = id
		if i > 0 {
			if _, err := st.AddSegment(ids[i-1], id); err != nil {
				b.Fatal(err)
			}
		}
	}
	return st, ids[0], ids[n-1]
}

// BenchmarkBFS_Chain measures a full traversal of a 10k-node segment chain.
func BenchmarkBFS_Chain(b *testing.B) {
	const N = 10000
	st, first, _ := chainStore(b, N)
	g := st.Graph()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, string(first))
	}
}

// BenchmarkFindPath_Chain measures end-to-end path search with StopAt.
func BenchmarkFindPath_Chain(b *testing.B) {
	const N = 10000
	st, first, last := chainStore(b, N)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.FindPath(first, last)
	}
}
