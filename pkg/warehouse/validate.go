package warehouse

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-retrofit/pkg/validation"
)

// New validates a legacy warehouse and returns it.
func New(w LegacyWarehouse) (*LegacyWarehouse, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate checks dimensions, coordinates, identifier uniqueness and edge
// endpoints. It fails on the first problem found.
func (w *LegacyWarehouse) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"width", w.Width},
		{"length", w.Length},
		{"aisles", float64(w.Aisles)},
		{"aisle_width", w.AisleWidth},
		{"aisle_length", w.AisleLength},
	}
	for _, d := range dims {
		if !(d.value > 0) || math.IsInf(d.value, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidDimension, d.name, d.value)
		}
	}

	zoneIDs := make(map[string]struct{}, len(w.Zones))
	for _, z := range w.Zones {
		if _, dup := zoneIDs[z.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateZoneID, z.ID)
		}
		zoneIDs[z.ID] = struct{}{}
		if z.X < 0 || z.Y < 0 {
			return fmt.Errorf("%w: zone %q at (%v, %v)", ErrNegativeCoordinate, z.ID, z.X, z.Y)
		}
		if !(z.Width > 0) || !(z.Height > 0) {
			return fmt.Errorf("%w: zone %q is %vx%v", ErrInvalidDimension, z.ID, z.Width, z.Height)
		}
	}

	nodeIDs := make(map[string]struct{}, len(w.Nodes))
	for _, n := range w.Nodes {
		if _, dup := nodeIDs[n.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
		}
		nodeIDs[n.ID] = struct{}{}
		if n.X < 0 || n.Y < 0 {
			return fmt.Errorf("%w: node %q at (%v, %v)", ErrNegativeCoordinate, n.ID, n.X, n.Y)
		}
	}

	edgeIDs := make(map[string]struct{}, len(w.Edges))
	for _, e := range w.Edges {
		if _, dup := edgeIDs[e.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateEdgeID, e.ID)
		}
		edgeIDs[e.ID] = struct{}{}
		if _, ok := nodeIDs[e.From]; !ok {
			return fmt.Errorf("%w: edge %q from %q", ErrUnknownEndpoint, e.ID, e.From)
		}
		if _, ok := nodeIDs[e.To]; !ok {
			return fmt.Errorf("%w: edge %q to %q", ErrUnknownEndpoint, e.ID, e.To)
		}
		if !(e.Distance > 0) || math.IsInf(e.Distance, 0) {
			return fmt.Errorf("%w: edge %q has distance %v", ErrNonPositiveDistance, e.ID, e.Distance)
		}
	}

	if w.Receiving != nil && (w.Receiving.X < 0 || w.Receiving.Y < 0) {
		return fmt.Errorf("%w: receiving at (%v, %v)", ErrNegativeCoordinate, w.Receiving.X, w.Receiving.Y)
	}
	if w.Shipping != nil && (w.Shipping.X < 0 || w.Shipping.Y < 0) {
		return fmt.Errorf("%w: shipping at (%v, %v)", ErrNegativeCoordinate, w.Shipping.X, w.Shipping.Y)
	}

	// Remaining tag rules: names, enums, obstacle extents.
	return validation.Struct(w)
}
