// SPDX-License-Identifier: MIT

// Package topology is the TopologyManager: it owns the node/segment graph
// of a harness (through a core.Store) together with the wires routed over
// it, and provides the graph operations every router and edit command is
// built from.
//
// Operations:
//
//	CreateNode / CreateConnectorNode / CreateJunction / CreateBranchPoint /
//	CreateFastener      place nodes of each kind
//	CreateSegment       join two nodes (never deduplicated)
//	FindSegmentBetween  first segment joining two nodes, insertion order
//	FindPath            fewest-hop segment path, discovery-order ties
//	RouteWire / Route   route a wire through optional via nodes, creating
//	                    direct segments where no path exists
//	SplitSegment / Split
//	                    insert a junction into a segment, migrating wires
//
// Wires registered with the Manager are kept consistent with the segments
// that carry them: adding a routed wire attaches it to every segment on its
// path, removing it detaches it, changing its path does both.
//
// Errors:
//
//   - ErrMissingNode     a pin's connector or a via node has no topology node.
//   - ErrNoPath          the node sequence yields no segment at all.
//   - ErrInvalidSplit    the segment to split is degenerate.
//   - ErrStaleReference  an id no longer names a live entity.
package topology
