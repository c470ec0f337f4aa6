package converter

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-retrofit/pkg/distance"
	"github.com/dd0wney/cluso-retrofit/pkg/feasibility"
)

func aisleWidthNote(width float64, t feasibility.Thresholds) string {
	w := feasibility.Meters(width)
	switch {
	case width < t.MinAisleWidth:
		return fmt.Sprintf("Current aisle width (%sm) is below minimum recommended (%sm). Consider widening aisles.",
			w, feasibility.Meters(t.MinAisleWidth))
	case width < t.OptimalAisleWidth:
		return fmt.Sprintf("Current aisle width (%sm) is acceptable but below optimal (%sm). May limit robot speed.",
			w, feasibility.Meters(t.OptimalAisleWidth))
	default:
		return fmt.Sprintf("Aisle width (%sm) meets optimal requirements.", w)
	}
}

func algorithmName(a distance.Algorithm) string {
	switch a {
	case distance.Dijkstra:
		return "Dijkstra's algorithm"
	default:
		return "Floyd-Warshall algorithm"
	}
}

func coverageNote(worst, target float64) string {
	switch {
	case math.IsInf(worst, 1):
		return "No charging station could be placed; the fleet has nowhere to recharge."
	case worst > target:
		return fmt.Sprintf("Worst-case distance to a charging station is %.1fm, above the %.1fm spacing target.", worst, target)
	default:
		return fmt.Sprintf("Every navigation node is within %.1fm of a charging station.", worst)
	}
}

// summaryRecommendations gives the headline advice for a conversion.
func summaryRecommendations(aisleWidth, minWidth, score float64, regular bool, stations int) []string {
	var out []string
	if aisleWidth >= minWidth {
		out = append(out, "Aisle width meets minimum requirements for robot operation")
	} else {
		out = append(out, fmt.Sprintf("Consider widening aisles from %sm to at least %sm",
			feasibility.Meters(aisleWidth), feasibility.Meters(minWidth)))
	}
	if regular {
		out = append(out, "Regular grid layout is ideal for autonomous navigation")
	} else {
		out = append(out, "Irregular aisle layout will need additional navigation waypoints")
	}
	out = append(out, fmt.Sprintf("Total of %d charging stations placed strategically", stations))
	switch {
	case score >= 8.0:
		out = append(out, "Warehouse is highly suitable for robotic retrofit")
	case score >= 6.0:
		out = append(out, "Warehouse is moderately suitable for robotic retrofit")
	default:
		out = append(out, "Warehouse requires significant modifications for robotic operation")
	}
	return out
}
