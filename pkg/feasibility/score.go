package feasibility

import (
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

const (
	noIssues  = "No issues found: all factors meet optimal thresholds"
	noActions = "No actions required: warehouse is ready for AGV deployment"
)

// scorer accumulates factors, issues and actions for one assessment.
type scorer struct {
	t       Thresholds
	factors []Factor
	issues  []string
	actions []string
}

func (s *scorer) add(f Factor) {
	s.factors = append(s.factors, f)
}

func (s *scorer) flag(issue, action string) {
	s.issues = append(s.issues, issue)
	s.actions = append(s.actions, action)
}

// Score grades a legacy warehouse for AGV retrofit on a 0-10 scale from
// aisle width, layout regularity, space utilization and dock
// accessibility. It depends only on its arguments.
func Score(w *warehouse.LegacyWarehouse, t Thresholds) Assessment {
	s := &scorer{t: t}
	s.aisleWidth(w.AisleWidth)
	s.regularity(w.ZonesOfType(warehouse.ZoneAisle))
	util := Utilization(w)
	s.utilization(util)
	s.accessibility(w.HasZoneType(warehouse.ZonePickup), w.HasZoneType(warehouse.ZoneDrop))

	total := 0.0
	for _, f := range s.factors {
		total += f.Score
	}
	total = geometry.Round(total, 1)
	grade := GradeFor(total)

	if len(s.issues) == 0 {
		s.issues = []string{noIssues}
	}
	if len(s.actions) == 0 {
		s.actions = []string{noActions}
	}

	return Assessment{
		Score:       total,
		Grade:       grade,
		Label:       grade.Label(),
		Verdict:     grade.Verdict(),
		IsFeasible:  total >= t.FeasibleScore,
		Utilization: util,
		Factors:     s.factors,
		Issues:      s.issues,
		Actions:     s.actions,
	}
}

// Utilization is the aisle floor area over the total floor area, or 0
// for a warehouse with no area.
func Utilization(w *warehouse.LegacyWarehouse) float64 {
	total := w.Width * w.Length
	if total <= 0 {
		return 0
	}
	return float64(w.Aisles) * w.AisleWidth * w.AisleLength / total
}

func (s *scorer) aisleWidth(width float64) {
	t := s.t
	aw, minW, optW := Meters(width), Meters(t.MinAisleWidth), Meters(t.OptimalAisleWidth)
	f := Factor{Name: FactorAisleWidth, MaxScore: 4.0, Weight: "40%"}

	switch {
	case width >= t.OptimalAisleWidth:
		f.Score, f.Status = 4.0, StatusOptimal
		f.Detail = fmt.Sprintf("Aisle width (%sm) meets optimal threshold (>= %sm). Supports bidirectional AGV traffic at full speed.", aw, optW)
	case width >= t.MinAisleWidth:
		f.Score, f.Status = 3.0, StatusAcceptable
		f.Detail = fmt.Sprintf("Aisle width (%sm) meets minimum requirement (>= %sm) but is below optimal (%sm). Bidirectional traffic possible but may require reduced speed.", aw, minW, optW)
		s.flag(
			fmt.Sprintf("Aisle width (%sm) is below optimal %sm: AGVs may need speed reduction in aisles", aw, optW),
			fmt.Sprintf("Consider widening aisles from %sm to %sm for full-speed bidirectional traffic", aw, optW),
		)
	case width >= t.MarginalAisleWidth:
		f.Score, f.Status = 2.0, StatusMarginal
		f.Detail = fmt.Sprintf("Aisle width (%sm) is below minimum recommended (%sm). AGV operation possible but restricted to reduced speed and careful navigation.", aw, minW)
		s.flag(
			fmt.Sprintf("Aisle width (%sm) is below minimum %sm: limited to slow, single-direction AGV traffic", aw, minW),
			fmt.Sprintf("Widen aisles from %sm to at least %sm before deploying AGV fleet", aw, minW),
		)
	case width >= t.PoorAisleWidth:
		f.Score, f.Status = 1.0, StatusPoor
		f.Detail = fmt.Sprintf("Aisle width (%sm) only supports single-direction AGV traffic at very low speed. High collision risk.", aw)
		s.flag(
			fmt.Sprintf("Aisle width (%sm) critically narrow: single-direction only, high collision risk", aw),
			fmt.Sprintf("Aisles must be widened from %sm to at least %sm: this is a blocking requirement", aw, minW),
		)
	default:
		f.Score, f.Status = 0.0, StatusInadequate
		f.Detail = fmt.Sprintf("Aisle width (%sm) is below absolute minimum (%sm). AGVs physically cannot operate in these aisles.", aw, Meters(t.PoorAisleWidth))
		s.flag(
			fmt.Sprintf("Aisle width (%sm) is below %sm: AGVs physically cannot fit", aw, Meters(t.PoorAisleWidth)),
			"Complete aisle redesign required: current layout cannot accommodate any AGV",
		)
	}
	s.add(f)
}

func (s *scorer) regularity(aisles []warehouse.Zone) {
	f := Factor{Name: FactorRegularity, MaxScore: 2.5, Weight: "25%"}

	switch len(aisles) {
	case 0:
		f.Score, f.Status = 0.0, StatusInadequate
		f.Detail = "No aisles detected: cannot establish AGV navigation grid."
		s.flag(
			"No aisle zones defined: AGV pathfinding is not possible",
			"Define aisle zones in the warehouse layout before attempting retrofit",
		)
	case 1:
		f.Score, f.Status = 1.0, StatusMarginal
		f.Detail = "Only 1 aisle detected: minimal grid structure for AGV navigation."
		s.flag(
			"Single-aisle layout provides very limited routing options for AGVs",
			"Add parallel aisles to create redundant paths and reduce congestion",
		)
	default:
		widthsEqual := true
		xs := make([]float64, len(aisles))
		for i, a := range aisles {
			xs[i] = a.X
			if a.Width != aisles[0].Width {
				widthsEqual = false
			}
		}
		sort.Float64s(xs)
		lo, hi := xs[1]-xs[0], xs[1]-xs[0]
		for i := 2; i < len(xs); i++ {
			gap := xs[i] - xs[i-1]
			lo, hi = min(lo, gap), max(hi, gap)
		}
		spacingEven := hi-lo < s.t.SpacingTolerance

		switch {
		case widthsEqual && spacingEven:
			f.Score, f.Status = 2.5, StatusOptimal
			f.Detail = fmt.Sprintf("Layout has %d evenly spaced parallel aisles with consistent %sm width. Ideal grid pattern for AGV navigation.", len(aisles), Meters(aisles[0].Width))
		case widthsEqual || spacingEven:
			f.Score, f.Status = 1.5, StatusAcceptable
			f.Detail = "Layout is partially regular: aisles exist but spacing or widths are inconsistent."
			s.flag(
				"Aisle spacing or widths are not fully consistent: may complicate path planning",
				"Standardize aisle widths and spacing where possible for simpler AGV routing",
			)
		default:
			f.Score, f.Status = 0.5, StatusPoor
			f.Detail = "Layout is irregular: aisles have varying widths and uneven spacing."
			s.flag(
				"Irregular layout with varying aisle widths and spacing",
				"Consider restructuring aisles into a regular grid pattern",
			)
		}
	}
	s.add(f)
}

func (s *scorer) utilization(u float64) {
	t := s.t
	p := percent(u)
	f := Factor{Name: FactorUtilization, MaxScore: 2.0, Weight: "20%"}

	switch {
	case u >= t.UtilizationOptimalLow && u <= t.UtilizationOptimalHigh:
		f.Score, f.Status = 2.0, StatusOptimal
		f.Detail = fmt.Sprintf("Space utilization is %s: optimal balance between storage density and AGV maneuverability.", p)
	case (u >= t.UtilizationAcceptableLow && u < t.UtilizationOptimalLow) ||
		(u > t.UtilizationOptimalHigh && u <= t.UtilizationAcceptableHigh):
		f.Score, f.Status = 1.5, StatusAcceptable
		f.Detail = fmt.Sprintf("Space utilization is %s: slightly outside optimal range (%.0f-%.0f%%). AGV operation feasible but not ideal.",
			p, t.UtilizationOptimalLow*100, t.UtilizationOptimalHigh*100)
		if u > t.UtilizationOptimalHigh {
			s.flag(
				fmt.Sprintf("Space utilization (%s) is high: aisles may feel congested during peak traffic", p),
				"Consider reducing storage density or adding buffer zones for AGV queuing",
			)
		} else {
			s.flag(
				fmt.Sprintf("Space utilization (%s) is low: warehouse may be underutilized", p),
				"Opportunity to add more storage racks or buffer areas",
			)
		}
	case u > t.UtilizationAcceptableHigh:
		f.Score, f.Status = 1.0, StatusPoor
		f.Detail = fmt.Sprintf("Space utilization is %s: too dense for safe AGV operation.", p)
		s.flag(
			fmt.Sprintf("Space utilization (%s) is critically high: AGVs will face constant congestion and collision risk", p),
			fmt.Sprintf("Remove some storage racks or widen aisles to bring utilization below %.0f%%", t.UtilizationOptimalHigh*100),
		)
	default:
		f.Score, f.Status = 1.0, StatusMarginal
		f.Detail = fmt.Sprintf("Space utilization is %s: significantly underutilized.", p)
		s.flag(
			fmt.Sprintf("Space utilization (%s) is very low", p),
			"Layout has excess open space: optimize rack placement",
		)
	}
	s.add(f)
}

func (s *scorer) accessibility(pickup, drop bool) {
	f := Factor{Name: FactorAccessibility, MaxScore: 1.5, Weight: "15%"}

	switch {
	case pickup && drop:
		f.Score, f.Status = 1.5, StatusOptimal
		f.Detail = "Both pickup and drop zones are defined and positioned at warehouse edges: ideal for AGV ingress/egress without crossing active storage areas."
	case pickup || drop:
		have, missing := "pickup", "drop"
		if drop {
			have, missing = "drop", "pickup"
		}
		f.Score, f.Status = 1.0, StatusMarginal
		f.Detail = fmt.Sprintf("Only %s zone defined. Missing %s zone.", have, missing)
		s.flag(
			fmt.Sprintf("Missing %s zone: AGVs need both endpoints for task routing", missing),
			fmt.Sprintf("Define a %s zone at a warehouse edge for complete task flow", missing),
		)
	default:
		f.Score, f.Status = 0.0, StatusInadequate
		f.Detail = "Neither pickup nor drop zones are defined. AGV task routing is impossible."
		s.flag(
			"No pickup or drop zones defined: AGVs have no task endpoints",
			"Define both pickup and drop zones before attempting retrofit",
		)
	}
	s.add(f)
}
