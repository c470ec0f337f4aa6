package converter

import (
	"github.com/dd0wney/cluso-retrofit/pkg/analysis"
	"github.com/dd0wney/cluso-retrofit/pkg/config"
	"github.com/dd0wney/cluso-retrofit/pkg/constraints"
	"github.com/dd0wney/cluso-retrofit/pkg/distance"
	"github.com/dd0wney/cluso-retrofit/pkg/feasibility"
	"github.com/dd0wney/cluso-retrofit/pkg/logging"
	"github.com/dd0wney/cluso-retrofit/pkg/metrics"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
)

// Options configures a Converter. Zero-valued groups fall back to their
// package defaults.
type Options struct {
	// Grid is used only when the layout carries no navigation nodes.
	Grid       navgraph.Options
	Distance   distance.Options
	Policy     analysis.Policy
	Thresholds feasibility.Thresholds
	// Config supplies the fleet parameters behind the constraint checks
	// and configuration warnings.
	Config  config.SimulationConfig
	Checker *constraints.Checker
	Logger  logging.Logger
	// Metrics is optional; nil disables recording.
	Metrics *metrics.Registry
}

// DefaultOptions returns options with every group at its default and
// logging disabled.
func DefaultOptions() Options {
	return Options{
		Grid:       navgraph.DefaultOptions(),
		Policy:     analysis.DefaultPolicy(),
		Thresholds: feasibility.DefaultThresholds(),
		Config:     config.Default(),
		Checker:    constraints.DefaultChecker(),
		Logger:     logging.NewNopLogger(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Policy.AccessibilityNeighbours == 0 && o.Policy.BottleneckThreshold == 0 {
		o.Policy = d.Policy
	}
	if o.Thresholds == (feasibility.Thresholds{}) {
		o.Thresholds = d.Thresholds
	}
	if o.Config.AGV.Count == 0 {
		o.Config = d.Config
	}
	if o.Checker == nil {
		o.Checker = d.Checker
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
