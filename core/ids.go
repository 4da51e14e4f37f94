// SPDX-License-Identifier: MIT

package core

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Id prefixes for generated ids.
const (
	PrefixNode        = "N"
	PrefixJunction    = "J"
	PrefixBranchPoint = "BP"
	PrefixFastener    = "FX"
	PrefixSegment     = "SEG"
	PrefixBundle      = "BND"
	PrefixWire        = "W"

	connectorNodePrefix = "CONN_"
)

// ConnectorNodeID returns the node id used for connector cid.
func ConnectorNodeID(cid string) NodeID { return NodeID(connectorNodePrefix + cid) }

// IDSource hands out candidate ids. The Store retries until a candidate
// is unused, so a source only has to be unlikely to repeat itself.
type IDSource interface {
	Next(prefix string) string
}

// SequentialIDs produces "<prefix>_<n>" with one counter per prefix.
type SequentialIDs struct {
	counters map[string]uint64
}

// NewSequentialIDs returns a SequentialIDs starting every prefix at 1.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{counters: make(map[string]uint64)}
}

// Next returns the next id for prefix.
func (s *SequentialIDs) Next(prefix string) string {
	s.counters[prefix]++
	return prefix + "_" + strconv.FormatUint(s.counters[prefix], 10)
}

// RandomIDs produces "<prefix>_<8 hex chars>" from random uuids.
type RandomIDs struct{}

// Next returns a random id for prefix.
func (RandomIDs) Next(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + hex[:8]
}
