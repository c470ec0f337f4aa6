package navgraph

import (
	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// Geometry is the floor plan the grid builder works from. The grid spans
// [0, Width] on the x axis and [0, Length] on the y axis.
type Geometry struct {
	Width     float64
	Length    float64
	Zones     []warehouse.Zone
	Obstacles []geometry.Rect
	Receiving *geometry.Point
	Shipping  *geometry.Point
}

// GeometryFromWarehouse derives builder input from a legacy layout.
// Storage zones become obstacles. Only declared zone entries are carried
// over, so zones without one tag no grid nodes. Receiving and shipping
// default to the centres of the first pickup and drop zones.
func GeometryFromWarehouse(w *warehouse.LegacyWarehouse) Geometry {
	g := Geometry{
		Width:     w.Width,
		Length:    w.Length,
		Zones:     make([]warehouse.Zone, 0, len(w.Zones)),
		Obstacles: append([]geometry.Rect(nil), w.Obstacles...),
		Receiving: w.Receiving,
		Shipping:  w.Shipping,
	}

	for _, z := range w.Zones {
		g.Zones = append(g.Zones, z)

		switch z.ZoneType {
		case warehouse.ZoneStorage:
			g.Obstacles = append(g.Obstacles, z.Rect())
		case warehouse.ZonePickup:
			if g.Receiving == nil {
				c := z.Center()
				g.Receiving = &c
			}
		case warehouse.ZoneDrop:
			if g.Shipping == nil {
				c := z.Center()
				g.Shipping = &c
			}
		case warehouse.ZoneCharging, warehouse.ZoneAisle, warehouse.ZoneCrossover:
		}
	}
	return g
}
