package converter

import (
	"github.com/dd0wney/cluso-retrofit/pkg/analysis"
	"github.com/dd0wney/cluso-retrofit/pkg/constraints"
	"github.com/dd0wney/cluso-retrofit/pkg/distance"
	"github.com/dd0wney/cluso-retrofit/pkg/feasibility"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// RoboticWarehouse is a legacy layout converted for AGV operation.
type RoboticWarehouse struct {
	RunID       string  `json:"run_id"`
	Name        string  `json:"name"`
	Width       float64 `json:"width"`
	Length      float64 `json:"length"`
	Aisles      int     `json:"aisles"`
	AisleWidth  float64 `json:"aisle_width"`
	AisleLength float64 `json:"aisle_length"`

	Zones            []warehouse.Zone        `json:"zones"`
	Nodes            []warehouse.Node        `json:"nodes"`
	Edges            []warehouse.Edge        `json:"edges"`
	ChargingStations []warehouse.Node        `json:"charging_stations"`
	NavigationGraph  map[string][]string     `json:"navigation_graph"`
	TrafficRules     []warehouse.TrafficRule `json:"traffic_rules"`
	// GridGenerated is set when the navigation graph came from the grid
	// builder rather than the layout's own nodes.
	GridGenerated bool `json:"grid_generated"`

	// Matrix answers distance and path queries; DistanceMatrix is its
	// serialized form with -1 for unreachable pairs.
	Matrix         *distance.Matrix              `json:"-"`
	DistanceMatrix map[string]map[string]float64 `json:"distance_matrix"`

	FeasibilityScore float64                `json:"feasibility_score"`
	Assessment       feasibility.Assessment `json:"feasibility_assessment"`

	ZoneMetrics     []analysis.ZoneMetrics    `json:"zone_metrics"`
	CriticalPaths   []analysis.CriticalPath   `json:"critical_paths"`
	Congestion      []analysis.NodeCongestion `json:"congestion"`
	Recommendations map[string][]string       `json:"zone_recommendations"`
	Violations      []constraints.Violation   `json:"-"`

	Summary  Summary  `json:"summary"`
	Notes    []string `json:"conversion_notes"`
	Warnings []string `json:"warnings"`
}

// Summary is the headline view of a conversion.
type Summary struct {
	TotalNodes         int      `json:"total_nodes"`
	TotalEdges         int      `json:"total_edges"`
	ChargingStations   int      `json:"charging_stations_count"`
	FeasibilityScore   float64  `json:"feasibility_score"`
	Grade              string   `json:"grade"`
	AisleWidthAdequate bool     `json:"aisle_width_adequate"`
	Recommendations    []string `json:"recommendations"`
}

// Legacy returns the warehouse as it stood before conversion, with the
// navigation graph actually used.
func (r *RoboticWarehouse) Legacy(name string) *warehouse.LegacyWarehouse {
	return &warehouse.LegacyWarehouse{
		Name:        name,
		Width:       r.Width,
		Length:      r.Length,
		Aisles:      r.Aisles,
		AisleWidth:  r.AisleWidth,
		AisleLength: r.AisleLength,
		Zones:       r.Zones,
		Nodes:       r.Nodes,
		Edges:       r.Edges,
	}
}
