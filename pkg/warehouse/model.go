package warehouse

import (
	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
)

// Node is a navigation point on the warehouse floor.
type Node struct {
	ID             string   `json:"id" yaml:"id" validate:"required"`
	X              float64  `json:"x" yaml:"x" validate:"gte=0"`
	Y              float64  `json:"y" yaml:"y" validate:"gte=0"`
	ZoneType       ZoneType `json:"zone_type" yaml:"zone_type" validate:"enum"`
	NodeType       NodeType `json:"node_type" yaml:"node_type" validate:"enum"`
	IsIntersection bool     `json:"is_intersection" yaml:"is_intersection"`
	ZoneID         string   `json:"zone_id,omitempty" yaml:"zone_id,omitempty"`
}

// Position returns the node's coordinates.
func (n Node) Position() geometry.Point {
	return geometry.Point{X: n.X, Y: n.Y}
}

// Edge connects two nodes. Bidirectional edges cost the same both ways.
type Edge struct {
	ID            string  `json:"id" yaml:"id" validate:"required"`
	From          string  `json:"from_node" yaml:"from_node" validate:"required"`
	To            string  `json:"to_node" yaml:"to_node" validate:"required"`
	Distance      float64 `json:"distance" yaml:"distance" validate:"gt=0"`
	Bidirectional bool    `json:"bidirectional" yaml:"bidirectional"`
}

// Zone is an axis-aligned functional area of the floor.
type Zone struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Name     string   `json:"name" yaml:"name"`
	X        float64  `json:"x" yaml:"x" validate:"gte=0"`
	Y        float64  `json:"y" yaml:"y" validate:"gte=0"`
	Width    float64  `json:"width" yaml:"width" validate:"gt=0"`
	Height   float64  `json:"height" yaml:"height" validate:"gt=0"`
	ZoneType ZoneType `json:"zone_type" yaml:"zone_type" validate:"enum"`

	// Entry is the declared entry point used by the grid builder. Nil
	// means the zone has no declared entry.
	Entry *geometry.Point `json:"entry,omitempty" yaml:"entry,omitempty"`
}

// Rect returns the zone footprint.
func (z Zone) Rect() geometry.Rect {
	return geometry.Rect{X: z.X, Y: z.Y, Width: z.Width, Height: z.Height}
}

// Center returns the midpoint of the zone footprint.
func (z Zone) Center() geometry.Point {
	return z.Rect().Center()
}

// LegacyWarehouse is a human-operated layout before conversion. The x axis
// spans Width and the y axis spans Length.
type LegacyWarehouse struct {
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Width       float64 `json:"width" yaml:"width"`
	Length      float64 `json:"length" yaml:"length"`
	Aisles      int     `json:"aisles" yaml:"aisles"`
	AisleWidth  float64 `json:"aisle_width" yaml:"aisle_width"`
	AisleLength float64 `json:"aisle_length" yaml:"aisle_length"`
	Zones       []Zone  `json:"zones" yaml:"zones" validate:"dive"`
	Nodes       []Node  `json:"nodes" yaml:"nodes" validate:"dive"`
	Edges       []Edge  `json:"edges" yaml:"edges" validate:"dive"`

	// Optional inputs for the grid builder.
	Obstacles []geometry.Rect `json:"obstacles,omitempty" yaml:"obstacles,omitempty" validate:"dive"`
	Receiving *geometry.Point `json:"receiving,omitempty" yaml:"receiving,omitempty"`
	Shipping  *geometry.Point `json:"shipping,omitempty" yaml:"shipping,omitempty"`
}

// ZonesOfType returns the zones with the given type in declaration order.
func (w *LegacyWarehouse) ZonesOfType(t ZoneType) []Zone {
	var out []Zone
	for _, z := range w.Zones {
		if z.ZoneType == t {
			out = append(out, z)
		}
	}
	return out
}

// HasZoneType reports whether any zone has type t.
func (w *LegacyWarehouse) HasZoneType(t ZoneType) bool {
	for _, z := range w.Zones {
		if z.ZoneType == t {
			return true
		}
	}
	return false
}

// TrafficRule constrains robot movement through zones or edges.
type TrafficRule struct {
	ID          string   `json:"rule_id"`
	Type        RuleType `json:"rule_type"`
	AppliesTo   []string `json:"applies_to"`
	Direction   string   `json:"direction,omitempty"`
	Description string   `json:"description,omitempty"`
}
