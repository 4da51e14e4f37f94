// SPDX-License-Identifier: MIT

package persist

// Version is the snapshot layout written by this package.
const Version = 1

// Snapshot is the persisted form of one harness document.
type Snapshot struct {
	Version    int         `json:"version" yaml:"version" validate:"gte=0,lte=1"`
	Connectors []Connector `json:"connectors" yaml:"connectors" validate:"dive"`
	Wires      []Wire      `json:"wires" yaml:"wires" validate:"dive"`
	// Branches are the topology segments.
	Branches []Branch `json:"branches" yaml:"branches" validate:"dive"`
	Nodes    []Node   `json:"nodes,omitempty" yaml:"nodes,omitempty" validate:"dive"`
	Bundles  []Bundle `json:"bundles,omitempty" yaml:"bundles,omitempty" validate:"dive"`
}

// Connector is a placed connector with its pins and catalogue data.
type Connector struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	PartNumber   string   `json:"part_number,omitempty" yaml:"part_number,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	X            float64  `json:"x" yaml:"x"`
	Y            float64  `json:"y" yaml:"y"`
	Rotation     float64  `json:"rotation,omitempty" yaml:"rotation,omitempty" validate:"gte=-360,lte=360"`
	Pins         []string `json:"pins,omitempty" yaml:"pins,omitempty" validate:"unique,dive,required"`
}

// Wire is a wire with its pin ends ("C1.3") and routed path.
type Wire struct {
	ID           string   `json:"id" yaml:"id" validate:"required"`
	From         string   `json:"from" yaml:"from" validate:"required,pinref"`
	To           string   `json:"to" yaml:"to" validate:"required,pinref"`
	Color        string   `json:"color,omitempty" yaml:"color,omitempty"`
	CrossSection float64  `json:"cross_section,omitempty" yaml:"cross_section,omitempty" validate:"gte=0"`
	Segments     []string `json:"segments,omitempty" yaml:"segments,omitempty" validate:"dive,required"`
	Origin       string   `json:"origin,omitempty" yaml:"origin,omitempty" validate:"omitempty,origin"`
	Hidden       bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Sources      []string `json:"sources,omitempty" yaml:"sources,omitempty" validate:"dive,required"`
}

// Branch is one topology segment. Wires lists the wires running through
// it; it is derived from the wire paths and checked against them on load.
type Branch struct {
	ID     string   `json:"id" yaml:"id" validate:"required"`
	Start  string   `json:"start" yaml:"start" validate:"required"`
	End    string   `json:"end" yaml:"end" validate:"required,nefield=Start"`
	Bundle string   `json:"bundle,omitempty" yaml:"bundle,omitempty"`
	Origin string   `json:"origin,omitempty" yaml:"origin,omitempty" validate:"omitempty,origin"`
	Wires  []string `json:"wires,omitempty" yaml:"wires,omitempty" validate:"unique,dive,required"`
}

// Node is one topology node. Kind is connector, junction, branch_point or
// fastener; the remaining fields apply to the matching kind only.
type Node struct {
	ID           string  `json:"id" yaml:"id" validate:"required"`
	Kind         string  `json:"kind" yaml:"kind" validate:"required,oneof=connector junction branch_point fastener"`
	X            float64 `json:"x" yaml:"x"`
	Y            float64 `json:"y" yaml:"y"`
	Connector    string  `json:"connector,omitempty" yaml:"connector,omitempty" validate:"required_if=Kind connector"`
	BranchType   string  `json:"branch_type,omitempty" yaml:"branch_type,omitempty" validate:"omitempty,oneof=split merge splice"`
	FastenerType string  `json:"fastener_type,omitempty" yaml:"fastener_type,omitempty"`
	PartNumber   string  `json:"part_number,omitempty" yaml:"part_number,omitempty"`
	Origin       string  `json:"origin,omitempty" yaml:"origin,omitempty" validate:"omitempty,origin"`
}

// Bundle is a drawn bundle with optional anchors and length override.
type Bundle struct {
	ID        string   `json:"id" yaml:"id" validate:"required"`
	StartX    float64  `json:"start_x" yaml:"start_x"`
	StartY    float64  `json:"start_y" yaml:"start_y"`
	EndX      float64  `json:"end_x" yaml:"end_x"`
	EndY      float64  `json:"end_y" yaml:"end_y"`
	StartNode string   `json:"start_node,omitempty" yaml:"start_node,omitempty"`
	EndNode   string   `json:"end_node,omitempty" yaml:"end_node,omitempty"`
	Length    *float64 `json:"length,omitempty" yaml:"length,omitempty" validate:"omitempty,gt=0"`
	Wires     []string `json:"wires,omitempty" yaml:"wires,omitempty" validate:"unique,dive,required"`
}
