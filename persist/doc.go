// SPDX-License-Identifier: MIT

// Package persist defines the flat collections a harness document is saved
// as (connectors, wires, branches, nodes, bundles) and reads and writes
// them as YAML or JSON.
//
// A Snapshot is plain data: ids and references are strings, positions are
// coordinates. Validate checks field constraints with struct tags and then
// the cross references between collections. Turning a Snapshot into a live
// document is the job of package harness.
package persist
