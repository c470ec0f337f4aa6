package constraints

import (
	"fmt"

	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// AisleWidthConstraint checks every aisle zone, or the declared aisle
// width when the layout has no aisle zones. Failing single-lane clearance
// is an error; failing only two-way clearance is a warning.
type AisleWidthConstraint struct{}

// Name returns the constraint name
func (AisleWidthConstraint) Name() string { return "AisleWidthConstraint" }

// Validate checks aisle clearance against the AGV envelope
func (c AisleWidthConstraint) Validate(site *Site) ([]Violation, error) {
	if site.Warehouse == nil {
		return nil, ErrNoWarehouse
	}
	type aisle struct {
		id    string
		width float64
	}
	var aisles []aisle
	for _, z := range site.Warehouse.ZonesOfType(warehouse.ZoneAisle) {
		aisles = append(aisles, aisle{z.ID, z.Width})
	}
	if len(aisles) == 0 {
		aisles = append(aisles, aisle{"aisles", site.Warehouse.AisleWidth})
	}

	violations := make([]Violation, 0)
	for _, a := range aisles {
		single := AisleWidth(a.width, site.AGV.Width, site.AGV.SafetyBuffer, false)
		if !single.Satisfied {
			violations = append(violations, Violation{
				Type:       AisleTooNarrow,
				Severity:   Error,
				Subject:    a.id,
				Constraint: c.Name(),
				Message: fmt.Sprintf("Aisle %s (%.2fm) is narrower than the %.2fm an AGV needs for one-way travel",
					a.id, a.width, single.MinimumRequired),
				Details: map[string]any{"margin": single.Margin},
			})
			continue
		}
		if !site.Bidirectional {
			continue
		}
		double := AisleWidth(a.width, site.AGV.Width, site.AGV.SafetyBuffer, true)
		if !double.Satisfied {
			violations = append(violations, Violation{
				Type:       AisleTooNarrow,
				Severity:   Warning,
				Subject:    a.id,
				Constraint: c.Name(),
				Message: fmt.Sprintf("Aisle %s (%.2fm) is too narrow for two-way AGV traffic (needs %.2fm)",
					a.id, a.width, double.MinimumRequired),
				Details: map[string]any{"margin": double.Margin},
			})
		}
	}
	return violations, nil
}

// FloorLoadConstraint checks a fully loaded AGV against the floor rating.
// The contact area is the AGV footprint.
type FloorLoadConstraint struct{}

// Name returns the constraint name
func (FloorLoadConstraint) Name() string { return "FloorLoadConstraint" }

// Validate checks the dynamic floor pressure
func (c FloorLoadConstraint) Validate(site *Site) ([]Violation, error) {
	check, err := FloorLoad(site.AGV.Mass, site.AGV.Payload, site.AGV.Width*site.AGV.Length,
		site.FloorCapacity, site.AGV.Acceleration)
	if err != nil {
		return nil, fmt.Errorf("floor load: %w", err)
	}
	if check.Satisfied {
		return nil, nil
	}
	return []Violation{{
		Type:       FloorOverload,
		Severity:   Error,
		Subject:    "fleet",
		Constraint: c.Name(),
		Message: fmt.Sprintf("Loaded AGV exerts %.0f Pa, above the floor rating of %.0f Pa (%.0f%%)",
			check.DynamicPressure, check.Capacity, check.UtilizationPct),
		Details: map[string]any{"utilization_pct": check.UtilizationPct},
	}}, nil
}

// AisleCapacityConstraint compares the configured per-aisle limit and the
// fleet size with what the aisles can physically hold.
type AisleCapacityConstraint struct{}

// Name returns the constraint name
func (AisleCapacityConstraint) Name() string { return "AisleCapacityConstraint" }

// Validate checks occupancy limits
func (c AisleCapacityConstraint) Validate(site *Site) ([]Violation, error) {
	if site.Warehouse == nil {
		return nil, ErrNoWarehouse
	}
	w := site.Warehouse
	capacity := AisleCapacity(w.AisleLength, site.AGV.Length, site.FollowingDistance, site.Bidirectional)

	violations := make([]Violation, 0)
	if site.MaxPerAisle > capacity {
		violations = append(violations, Violation{
			Type:       AisleOverCapacity,
			Severity:   Warning,
			Subject:    "aisles",
			Constraint: c.Name(),
			Message: fmt.Sprintf("Configured limit of %d AGVs per aisle exceeds the physical capacity of %d",
				site.MaxPerAisle, capacity),
			Details: map[string]any{"capacity": capacity},
		})
	}
	if total := capacity * w.Aisles; site.FleetSize > total {
		violations = append(violations, Violation{
			Type:       FleetOverCapacity,
			Severity:   Warning,
			Subject:    "fleet",
			Constraint: c.Name(),
			Message: fmt.Sprintf("Fleet of %d AGVs exceeds the %d that fit in %d aisles at once",
				site.FleetSize, total, w.Aisles),
			Details: map[string]any{"capacity": total},
		})
	}
	return violations, nil
}
