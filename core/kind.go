// SPDX-License-Identifier: MIT

package core

import "fmt"

// KindTag enumerates the node kind variants.
type KindTag uint8

const (
	TagConnector KindTag = iota
	TagJunction
	TagBranchPoint
	TagFastener
)

func (t KindTag) String() string {
	switch t {
	case TagConnector:
		return "connector"
	case TagJunction:
		return "junction"
	case TagBranchPoint:
		return "branch_point"
	case TagFastener:
		return "fastener"
	default:
		return fmt.Sprintf("KindTag(%d)", uint8(t))
	}
}

// ParseKindTag is the inverse of KindTag.String.
func ParseKindTag(s string) (KindTag, error) {
	for t := TagConnector; t <= TagFastener; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("core: unknown node kind %q", s)
}

// Kind is the tagged union of node variants. The unexported marker keeps
// the set closed: ConnectorKind, JunctionKind, BranchPointKind, FastenerKind.
type Kind interface {
	Tag() KindTag
	kind()
}

// ConnectorKind anchors a node to an external connector.
type ConnectorKind struct {
	ConnectorID string
}

// JunctionKind is a splice point created by splitting a segment.
type JunctionKind struct{}

// BranchPointKind is a point where a trunk forks or merges.
type BranchPointKind struct {
	Type BranchType
}

// FastenerKind is a mounting point (clip, cable tie, grommet, ...) that
// wires pass through.
type FastenerKind struct {
	Type       string
	PartNumber string
}

func (ConnectorKind) Tag() KindTag   { return TagConnector }
func (JunctionKind) Tag() KindTag    { return TagJunction }
func (BranchPointKind) Tag() KindTag { return TagBranchPoint }
func (FastenerKind) Tag() KindTag    { return TagFastener }

func (ConnectorKind) kind()   {}
func (JunctionKind) kind()    {}
func (BranchPointKind) kind() {}
func (FastenerKind) kind()    {}

// BranchType distinguishes branch point roles.
type BranchType uint8

const (
	BranchSplit BranchType = iota
	BranchMerge
	BranchSplice
)

func (b BranchType) String() string {
	switch b {
	case BranchSplit:
		return "split"
	case BranchMerge:
		return "merge"
	case BranchSplice:
		return "splice"
	default:
		return fmt.Sprintf("BranchType(%d)", uint8(b))
	}
}

// ParseBranchType accepts "split", "merge" or "splice".
func ParseBranchType(s string) (BranchType, error) {
	switch s {
	case "split", "":
		return BranchSplit, nil
	case "merge":
		return BranchMerge, nil
	case "splice":
		return BranchSplice, nil
	}
	return 0, fmt.Errorf("core: unknown branch type %q", s)
}

// idPrefix maps a kind to the id prefix used for generated node ids.
func idPrefix(k Kind) string {
	switch k.(type) {
	case JunctionKind:
		return PrefixJunction
	case BranchPointKind:
		return PrefixBranchPoint
	case FastenerKind:
		return PrefixFastener
	default:
		return PrefixNode
	}
}
