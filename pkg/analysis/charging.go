package analysis

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

const (
	// chargingWallOffset keeps stations clear of the wall.
	chargingWallOffset = 1.5
	// chargingEndOffset places the end stations just past the dock zones.
	chargingEndOffset = 8.0
	// chargingSlideStep is how far a blocked station moves along its wall per try.
	chargingSlideStep = 1.0
)

// ChargingPlacement is the result of placing stations along the walls.
type ChargingPlacement struct {
	Stations []warehouse.Node
	Notes    []string
}

// PlaceChargingStations puts one station on the left wall near the pickup
// end, one at the middle of the left wall, and one on the right wall near
// the drop end. A station that lands inside an aisle footprint slides
// along its wall until clear; if no clear spot exists it is dropped.
func PlaceChargingStations(w *warehouse.LegacyWarehouse) ChargingPlacement {
	aisles := w.ZonesOfType(warehouse.ZoneAisle)

	left := geometry.Clamp(chargingWallOffset, 0, w.Width)
	right := geometry.Clamp(w.Width-chargingWallOffset, 0, w.Width)
	candidates := []geometry.Point{
		{X: left, Y: geometry.Clamp(chargingEndOffset, 0, w.Length)},
		{X: left, Y: w.Length / 2},
		{X: right, Y: geometry.Clamp(w.Length-chargingEndOffset, 0, w.Length)},
	}

	var out ChargingPlacement
	for i, c := range candidates {
		id := fmt.Sprintf("charging_%d", i+1)
		p, ok := clearSpot(c, w.Length, aisles)
		if !ok {
			out.Notes = append(out.Notes, fmt.Sprintf("Skipped %s: no wall position clear of aisle footprints.", id))
			continue
		}
		if p != c {
			out.Notes = append(out.Notes, fmt.Sprintf("Moved %s along the wall to (%.1f, %.1f) to keep aisles clear.", id, p.X, p.Y))
		}
		out.Stations = append(out.Stations, warehouse.Node{
			ID:       id,
			X:        p.X,
			Y:        p.Y,
			ZoneType: warehouse.ZoneCharging,
			NodeType: warehouse.NodeCharging,
		})
	}
	return out
}

// clearSpot searches outward along the wall (constant x) in alternating
// directions for a point outside every aisle.
func clearSpot(p geometry.Point, length float64, aisles []warehouse.Zone) (geometry.Point, bool) {
	if !insideAny(p, aisles) {
		return p, true
	}
	steps := int(math.Ceil(length / chargingSlideStep))
	for s := 1; s <= steps; s++ {
		for _, dir := range []float64{1, -1} {
			q := geometry.Point{X: p.X, Y: p.Y + dir*float64(s)*chargingSlideStep}
			if q.Y < 0 || q.Y > length {
				continue
			}
			if !insideAny(q, aisles) {
				return q, true
			}
		}
	}
	return geometry.Point{}, false
}

func insideAny(p geometry.Point, zones []warehouse.Zone) bool {
	for _, z := range zones {
		if z.Rect().Contains(p) {
			return true
		}
	}
	return false
}

// ChargingCoverage returns the largest distance from any navigation node to
// its nearest station, or +Inf when there are nodes but no stations.
func ChargingCoverage(stations, nodes []warehouse.Node) float64 {
	worst := 0.0
	for _, n := range nodes {
		nearest := math.Inf(1)
		for _, s := range stations {
			nearest = math.Min(nearest, geometry.Euclidean(n.Position(), s.Position()))
		}
		worst = math.Max(worst, nearest)
	}
	return worst
}
