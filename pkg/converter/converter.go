// Package converter turns a legacy warehouse layout into a robotic one: it
// builds or adopts the navigation graph, computes all-pairs distances,
// places charging stations, writes traffic rules, scores feasibility and
// analyzes zones and critical paths.
package converter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-retrofit/pkg/analysis"
	"github.com/dd0wney/cluso-retrofit/pkg/distance"
	"github.com/dd0wney/cluso-retrofit/pkg/feasibility"
	"github.com/dd0wney/cluso-retrofit/pkg/logging"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// Converter runs the conversion pipeline. It holds no per-run state and is
// safe for concurrent use.
type Converter struct {
	opts Options
}

// New creates a converter, filling unset option groups with defaults.
func New(opts Options) *Converter {
	return &Converter{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert validates w and produces its robotic counterpart. The input is
// not modified. Cancellation is checked between pipeline stages.
func (c *Converter) Convert(ctx context.Context, w *warehouse.LegacyWarehouse) (*RoboticWarehouse, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := c.opts.Logger.With(logging.Component("converter"), logging.RunID(runID))

	out, err := c.convert(ctx, runID, w, log)

	elapsed := time.Since(start)
	if c.opts.Metrics != nil {
		if out != nil {
			c.opts.Metrics.RecordConversion(elapsed, len(out.Nodes), len(out.Edges), len(out.ChargingStations), nil)
		} else {
			c.opts.Metrics.RecordConversion(elapsed, 0, 0, 0, err)
		}
	}
	if err != nil {
		log.Error("conversion failed", logging.Error(err), logging.Latency(elapsed))
		return nil, err
	}
	log.Info("converted warehouse",
		logging.Warehouse(w.Name),
		logging.Nodes(len(out.Nodes)),
		logging.Edges(len(out.Edges)),
		logging.Score(out.Assessment.Score),
		logging.Grade(string(out.Assessment.Grade)),
		logging.Count(len(out.Warnings)),
		logging.Latency(elapsed),
	)
	return out, nil
}

func (c *Converter) convert(ctx context.Context, runID string, w *warehouse.LegacyWarehouse, log logging.Logger) (*RoboticWarehouse, error) {
	if w == nil {
		return nil, ErrNilWarehouse
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validate warehouse %q: %w", w.Name, err)
	}

	// work is a shallow copy so a generated grid never leaks into the caller's value.
	work := *w
	out := &RoboticWarehouse{
		RunID:       runID,
		Name:        w.Name + " (Robotic)",
		Width:       w.Width,
		Length:      w.Length,
		Aisles:      w.Aisles,
		AisleWidth:  w.AisleWidth,
		AisleLength: w.AisleLength,
		Zones:       w.Zones,
	}
	out.Notes = append(out.Notes, aisleWidthNote(w.AisleWidth, c.opts.Thresholds))

	if len(work.Nodes) == 0 {
		timer := logging.StartTimer(log, "built navigation grid")
		g, err := navgraph.Build(navgraph.GeometryFromWarehouse(&work), c.opts.Grid)
		if err != nil {
			return nil, fmt.Errorf("build navigation grid: %w", err)
		}
		timer.End(logging.Nodes(len(g.Nodes)), logging.Edges(len(g.Edges)))
		if len(g.Nodes) == 0 {
			return nil, ErrEmptyGraph
		}
		work.Nodes, work.Edges = g.Nodes, g.Edges
		out.GridGenerated = true
		out.Notes = append(out.Notes, fmt.Sprintf("Generated navigation grid at %sm spacing (%d nodes, %d edges).",
			feasibility.Meters(c.gridSpacing()), len(g.Nodes), len(g.Edges)))
	}
	out.Nodes, out.Edges = work.Nodes, work.Edges

	out.NavigationGraph = navgraph.Adjacency(work.Nodes, work.Edges)
	out.Notes = append(out.Notes, fmt.Sprintf("Built navigation graph with %d nodes.", len(out.NavigationGraph)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := c.distances(work.Nodes, work.Edges, log)
	if err != nil {
		return nil, err
	}
	out.Matrix = m
	out.DistanceMatrix = m.Keyed()
	out.Notes = append(out.Notes, fmt.Sprintf("Computed %dx%d distance matrix using %s.", m.Len(), m.Len(), algorithmName(m.Algorithm())))
	if unreachable := m.UnreachablePairs(); unreachable > 0 {
		components := distance.Components(work.Nodes, work.Edges)
		out.Warnings = append(out.Warnings, fmt.Sprintf("Navigation graph has %d disconnected components; %d node pairs are unreachable.",
			len(components), unreachable))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	placement := analysis.PlaceChargingStations(&work)
	out.ChargingStations = placement.Stations
	out.Notes = append(out.Notes, fmt.Sprintf("Placed %d charging stations along warehouse walls for optimal coverage without blocking aisles.",
		len(placement.Stations)))
	out.Notes = append(out.Notes, placement.Notes...)
	out.Notes = append(out.Notes, coverageNote(analysis.ChargingCoverage(placement.Stations, work.Nodes), c.opts.Policy.ChargingStationSpread))

	out.TrafficRules = analysis.GenerateTrafficRules(&work)
	out.Notes = append(out.Notes, fmt.Sprintf("Generated %d traffic rules for efficient navigation.", len(out.TrafficRules)))

	out.Assessment = feasibility.Score(&work, c.opts.Thresholds)
	out.FeasibilityScore = out.Assessment.Score
	out.Notes = append(out.Notes, out.Assessment.Notes()...)
	if c.opts.Metrics != nil {
		c.opts.Metrics.RecordFeasibility(out.Assessment.Score, string(out.Assessment.Grade))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.analyze(&work, out)

	if err := c.checkFleet(&work, out); err != nil {
		return nil, err
	}
	out.Notes = append(out.Notes, out.Warnings...)
	for _, warning := range out.Warnings {
		log.Warn(warning, logging.Warehouse(w.Name))
	}

	regular := false
	if f, ok := out.Assessment.Factor(feasibility.FactorRegularity); ok {
		regular = f.Score == f.MaxScore
	}
	out.Summary = Summary{
		TotalNodes:         len(out.Nodes),
		TotalEdges:         len(out.Edges),
		ChargingStations:   len(out.ChargingStations),
		FeasibilityScore:   out.Assessment.Score,
		Grade:              string(out.Assessment.Grade),
		AisleWidthAdequate: w.AisleWidth >= c.opts.Thresholds.MinAisleWidth,
		Recommendations: summaryRecommendations(w.AisleWidth, c.opts.Thresholds.MinAisleWidth,
			out.Assessment.Score, regular, len(out.ChargingStations)),
	}
	return out, nil
}

func (c *Converter) gridSpacing() float64 {
	if c.opts.Grid.GridSpacing > 0 {
		return c.opts.Grid.GridSpacing
	}
	return navgraph.DefaultGridSpacing
}

func (c *Converter) distances(nodes []warehouse.Node, edges []warehouse.Edge, log logging.Logger) (*distance.Matrix, error) {
	timer := logging.StartTimer(log, "computed distance matrix", logging.Nodes(len(nodes)))
	m, err := distance.Compute(nodes, edges, c.opts.Distance)
	if err != nil {
		timer.EndError(err)
		if c.opts.Metrics != nil {
			c.opts.Metrics.RecordDistanceMatrix(c.opts.Distance.Algorithm.String(), len(nodes), 0, timer.Elapsed(), err)
		}
		return nil, fmt.Errorf("distance matrix: %w", err)
	}
	elapsed := timer.End(logging.Algorithm(m.Algorithm().String()))
	if c.opts.Metrics != nil {
		c.opts.Metrics.RecordDistanceMatrix(m.Algorithm().String(), m.Len(), m.UnreachablePairs(), elapsed, nil)
	}
	return m, nil
}

// analyze fills the zone metrics, critical paths, congestion and zone
// recommendations. Declared shipping and receiving points override the
// policy's reference points.
func (c *Converter) analyze(w *warehouse.LegacyWarehouse, out *RoboticWarehouse) {
	p := c.opts.Policy
	if w.Shipping != nil {
		p.ShippingPoint = *w.Shipping
	}
	if w.Receiving != nil {
		p.ReceivingPoint = *w.Receiving
	}

	out.CriticalPaths = analysis.CriticalPaths(w.Nodes, w.Zones, out.Matrix, p)
	out.Congestion = analysis.Congestion(out.CriticalPaths)
	out.ZoneMetrics = analysis.AnalyzeZones(w.Zones, w.Nodes, out.Congestion, p)
	out.Recommendations = analysis.RecommendZoneImprovements(out.ZoneMetrics, p)
}

// checkFleet collects configuration warnings and physical constraint
// violations into out.Warnings.
func (c *Converter) checkFleet(w *warehouse.LegacyWarehouse, out *RoboticWarehouse) error {
	cfg := c.opts.Config.ForWarehouse(w)
	out.Warnings = append(out.Warnings, cfg.Validate()...)

	result, err := c.opts.Checker.Check(cfg.Site(w))
	if err != nil {
		return fmt.Errorf("constraint check: %w", err)
	}
	out.Violations = result.Violations
	out.Warnings = append(out.Warnings, result.Messages()...)
	if c.opts.Metrics != nil {
		for _, v := range result.Violations {
			c.opts.Metrics.RecordViolation(v.Type.String(), v.Severity.String())
		}
	}
	return nil
}
