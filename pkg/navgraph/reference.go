package navgraph

import (
	"fmt"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

const (
	// referenceMargin is the strip left of the first aisle kept free for
	// the pickup zone and cross traffic.
	referenceMargin = 6.0
	// referenceAisleStart is the y offset where aisles begin.
	referenceAisleStart = 5.0
)

// ReferenceConfig describes a parallel-aisle layout with a pickup zone and
// a drop zone.
type ReferenceConfig struct {
	Name        string        `json:"name" yaml:"name"`
	Width       float64       `json:"width" yaml:"width"`
	Length      float64       `json:"length" yaml:"length"`
	Aisles      int           `json:"aisles" yaml:"aisles"`
	AisleWidth  float64       `json:"aisle_width" yaml:"aisle_width"`
	AisleLength float64       `json:"aisle_length" yaml:"aisle_length"`
	Pickup      geometry.Rect `json:"pickup_zone" yaml:"pickup_zone"`
	Drop        geometry.Rect `json:"drop_zone" yaml:"drop_zone"`
}

// DefaultReferenceConfig is the traditional 5-aisle, 20m x 60m layout.
func DefaultReferenceConfig() ReferenceConfig {
	return ReferenceConfig{
		Name:        "Layout A - Traditional 5-Aisle Warehouse",
		Width:       20.0,
		Length:      60.0,
		Aisles:      5,
		AisleWidth:  3.0,
		AisleLength: 50.0,
		Pickup:      geometry.Rect{X: 0, Y: 0, Width: 5, Height: 5},
		Drop:        geometry.Rect{X: 15, Y: 55, Width: 5, Height: 5},
	}
}

// AisleSpacing is the centre-to-centre distance between adjacent aisles.
func (c ReferenceConfig) AisleSpacing() float64 {
	return (c.Width - referenceMargin) / float64(c.Aisles+1)
}

// AisleX is the centre line of aisle i (zero-based).
func (c ReferenceConfig) AisleX(i int) float64 {
	return referenceMargin + float64(i+1)*c.AisleSpacing()
}

// BuildReference derives zones, nodes and edges for a parallel-aisle
// layout: one entry, mid and exit node per aisle, chained vertically, with
// crossovers between neighbouring aisles at each of the three levels.
func BuildReference(cfg ReferenceConfig) (*warehouse.LegacyWarehouse, error) {
	if cfg.Aisles < 1 {
		return nil, fmt.Errorf("%w: need at least one aisle, got %d", ErrInvalidLayout, cfg.Aisles)
	}
	if cfg.Width <= referenceMargin {
		return nil, fmt.Errorf("%w: width %v leaves no room for aisles", ErrInvalidLayout, cfg.Width)
	}

	n := cfg.Aisles
	spacing := cfg.AisleSpacing()
	levels := [3]struct {
		suffix string
		y      float64
		kind   warehouse.NodeType
	}{
		{"entry", referenceAisleStart, warehouse.NodeAisleEntry},
		{"mid", referenceAisleStart + cfg.AisleLength/2, warehouse.NodeWaypoint},
		{"exit", referenceAisleStart + cfg.AisleLength, warehouse.NodeAisleExit},
	}
	nodeID := func(aisle int, level string) string {
		return fmt.Sprintf("node_aisle_%d_%s", aisle, level)
	}

	zones := []warehouse.Zone{
		{ID: "zone_pickup", Name: "Pickup Zone", X: cfg.Pickup.X, Y: cfg.Pickup.Y,
			Width: cfg.Pickup.Width, Height: cfg.Pickup.Height, ZoneType: warehouse.ZonePickup},
		{ID: "zone_drop", Name: "Drop Zone", X: cfg.Drop.X, Y: cfg.Drop.Y,
			Width: cfg.Drop.Width, Height: cfg.Drop.Height, ZoneType: warehouse.ZoneDrop},
	}
	for i := 0; i < n; i++ {
		zones = append(zones, warehouse.Zone{
			ID:       fmt.Sprintf("zone_aisle_%d", i+1),
			Name:     fmt.Sprintf("Aisle %d", i+1),
			X:        cfg.AisleX(i) - cfg.AisleWidth/2,
			Y:        referenceAisleStart,
			Width:    cfg.AisleWidth,
			Height:   cfg.AisleLength,
			ZoneType: warehouse.ZoneAisle,
		})
	}

	pickup := cfg.Pickup.Center()
	drop := cfg.Drop.Center()
	nodes := []warehouse.Node{
		{ID: "node_pickup", X: pickup.X, Y: pickup.Y, ZoneType: warehouse.ZonePickup, NodeType: warehouse.NodePickup},
		{ID: "node_drop", X: drop.X, Y: drop.Y, ZoneType: warehouse.ZoneDrop, NodeType: warehouse.NodeDrop},
	}
	for i := 0; i < n; i++ {
		for _, lvl := range levels {
			nodes = append(nodes, warehouse.Node{
				ID:       nodeID(i+1, lvl.suffix),
				X:        cfg.AisleX(i),
				Y:        lvl.y,
				ZoneType: warehouse.ZoneAisle,
				NodeType: lvl.kind,
			})
		}
	}

	var edges []warehouse.Edge
	addEdge := func(from, to string, d float64) {
		edges = append(edges, warehouse.Edge{
			ID:            fmt.Sprintf("edge_%03d", len(edges)+1),
			From:          from,
			To:            to,
			Distance:      geometry.Round(d, 2),
			Bidirectional: true,
		})
	}

	firstEntry := geometry.Point{X: cfg.AisleX(0), Y: levels[0].y}
	lastExit := geometry.Point{X: cfg.AisleX(n - 1), Y: levels[2].y}
	addEdge("node_pickup", nodeID(1, "entry"), geometry.Euclidean(pickup, firstEntry))
	addEdge(nodeID(n, "exit"), "node_drop", geometry.Euclidean(lastExit, drop))

	for i := 1; i <= n; i++ {
		addEdge(nodeID(i, "entry"), nodeID(i, "mid"), cfg.AisleLength/2)
		addEdge(nodeID(i, "mid"), nodeID(i, "exit"), cfg.AisleLength/2)
	}
	for _, lvl := range levels {
		for i := 1; i < n; i++ {
			addEdge(nodeID(i, lvl.suffix), nodeID(i+1, lvl.suffix), spacing)
		}
	}

	return warehouse.New(warehouse.LegacyWarehouse{
		Name:        cfg.Name,
		Width:       cfg.Width,
		Length:      cfg.Length,
		Aisles:      n,
		AisleWidth:  cfg.AisleWidth,
		AisleLength: cfg.AisleLength,
		Zones:       zones,
		Nodes:       nodes,
		Edges:       edges,
	})
}
