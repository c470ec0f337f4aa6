package objective

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-retrofit/pkg/distance"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

func lineMatrix(t *testing.T) *distance.Matrix {
	t.Helper()
	nodes := []warehouse.Node{
		{ID: "a", NodeType: warehouse.NodeWaypoint},
		{ID: "b", X: 10, NodeType: warehouse.NodeWaypoint},
		{ID: "c", X: 15, NodeType: warehouse.NodeWaypoint},
		{ID: "island", X: 50, NodeType: warehouse.NodeWaypoint},
	}
	edges := []warehouse.Edge{
		{ID: "e1", From: "a", To: "b", Distance: 10, Bidirectional: true},
		{ID: "e2", From: "b", To: "c", Distance: 5, Bidirectional: true},
	}
	m, err := distance.Compute(nodes, edges, distance.Options{})
	require.NoError(t, err)
	return m
}

func TestEvaluate(t *testing.T) {
	in := Input{
		Paths: map[string][]string{
			"agv_1": {"a", "b", "c"},
			"agv_2": {"c", "a"},
		},
		TravelTimes:  map[string]float64{"agv_1": 100},
		WaitTimes:    map[string]float64{"agv_1": 20},
		ServiceTimes: map[string]float64{"agv_2": 30},
		BatteryUsed:  map[string]float64{"agv_1": 5, "agv_2": 3},
		Conflicts:    []Conflict{{Type: "head_on"}, {Type: "intersection"}},
	}

	r, err := Evaluate(in, DefaultWeights(), DefaultCosts(), lineMatrix(t))
	require.NoError(t, err)

	assert.InDelta(t, 30.0, r.TravelDistance, 1e-9)
	assert.InDelta(t, 0.3, r.Costs.Travel, 1e-9)
	assert.InDelta(t, 0.75, r.Costs.Time, 1e-9)
	assert.InDelta(t, 0.8, r.Costs.Energy, 1e-9)
	assert.InDelta(t, 10.0, r.Costs.Conflict, 1e-9)
	assert.InDelta(t, 0.105, r.Weighted.Travel, 1e-9)
	assert.InDelta(t, 1.5, r.Weighted.Conflict, 1e-9)
	assert.InDelta(t, 1.99, r.Total, 1e-9)
}

func TestEvaluateConflictCount(t *testing.T) {
	w := Weights{Conflict: 1}
	r, err := Evaluate(Input{ConflictCount: 3}, w, DefaultCosts(), lineMatrix(t))
	require.NoError(t, err)
	assert.InDelta(t, 15.0, r.Total, 1e-9)
}

func TestEvaluateErrors(t *testing.T) {
	m := lineMatrix(t)
	tests := []struct {
		name string
		in   Input
		w    Weights
		c    Costs
		want error
	}{
		{"weights over", Input{}, Weights{Travel: 0.4, Time: 0.4, Energy: 0.4}, DefaultCosts(), ErrWeightsSum},
		{"weights under", Input{}, Weights{Travel: 0.5, Time: 0.2}, DefaultCosts(), ErrWeightsSum},
		{"negative cost", Input{}, DefaultWeights(), Costs{PerMeter: -1}, ErrNegativeCost},
		{"unknown node", Input{Paths: map[string][]string{"agv": {"a", "zz"}}}, DefaultWeights(), DefaultCosts(), ErrUnknownNode},
		{"unreachable", Input{Paths: map[string][]string{"agv": {"a", "island"}}}, DefaultWeights(), DefaultCosts(), ErrUnreachableLeg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.in, tt.w, tt.c, m)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Evaluate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWeightsTolerance(t *testing.T) {
	assert.NoError(t, Weights{Travel: 0.5, Time: 0.5005}.Validate())
	assert.NoError(t, DefaultWeights().Validate())
	assert.ErrorIs(t, Weights{Travel: 0.5, Time: 0.502}.Validate(), ErrWeightsSum)
	assert.ErrorIs(t, Weights{Travel: math.NaN()}.Validate(), ErrWeightsSum)
}

func TestWeightProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	m := lineMatrix(t)

	properties.Property("normalized weights validate and split the total", prop.ForAll(
		func(a, b, c, d, battery float64) bool {
			s := a + b + c + d
			w := Weights{Travel: a / s, Time: b / s, Energy: c / s, Conflict: d / s}
			r, err := Evaluate(Input{
				Paths:         map[string][]string{"agv": {"a", "c"}},
				TravelTimes:   map[string]float64{"agv": 60},
				BatteryUsed:   map[string]float64{"agv": battery},
				ConflictCount: 1,
			}, w, DefaultCosts(), m)
			if err != nil {
				return false
			}
			parts := r.Weighted.Travel + r.Weighted.Time + r.Weighted.Energy + r.Weighted.Conflict
			return math.Abs(parts-r.Total) < 1e-9
		},
		gen.Float64Range(0.01, 1),
		gen.Float64Range(0.01, 1),
		gen.Float64Range(0.01, 1),
		gen.Float64Range(0.01, 1),
		gen.Float64Range(0, 100),
	))

	properties.Property("scaled weights fail off the unit sum", prop.ForAll(
		func(scale float64) bool {
			w := DefaultWeights()
			w.Travel *= scale
			w.Time *= scale
			w.Energy *= scale
			w.Conflict *= scale
			return errors.Is(w.Validate(), ErrWeightsSum)
		},
		gen.OneGenOf(gen.Float64Range(0, 0.99), gen.Float64Range(1.01, 5)),
	))

	properties.TestingRun(t)
}

func TestAGVStateText(t *testing.T) {
	for _, s := range AGVStates {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back AGVState
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	_, err := ParseAGVState("teleporting")
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = AGVState(0).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRecorderSummary(t *testing.T) {
	r := NewRecorder()
	r.RecordCompletion(TaskCompletion{TaskID: "t1", AGVID: "agv_1", Start: 0, End: 120, Distance: 40})
	r.RecordCompletion(TaskCompletion{TaskID: "t2", AGVID: "agv_1", Start: 100, End: 160, Distance: 20})
	r.RecordCompletion(TaskCompletion{TaskID: "t3", AGVID: "agv_2", Start: 0, End: 90, Distance: 60})
	r.RecordState(StateRecord{AGVID: "agv_1", State: StateMovingLoaded, Start: 0, End: 60})
	r.RecordState(StateRecord{AGVID: "agv_1", State: StateMovingEmpty, Start: 60, End: 80})
	r.RecordState(StateRecord{AGVID: "agv_1", State: StateIdle, Start: 80, End: 100})
	r.RecordState(StateRecord{AGVID: "agv_2", State: StateCharging, Start: 0, End: 100})
	r.RecordConflict(Conflict{Type: "head_on", ResolutionTime: 4})
	r.RecordConflict(Conflict{Type: "head_on", ResolutionTime: 2})

	s := r.Summary(2)
	assert.Equal(t, 3, s.CompletedTasks)
	assert.InDelta(t, 90.0, s.MeanCompletionTime, 1e-9)
	assert.InDelta(t, 1.5, s.ThroughputPerHour, 1e-9)
	assert.InDelta(t, 1.0, s.PerAGVThroughput["agv_1"], 1e-9)
	assert.InDelta(t, 40.0, s.AvgDistancePerTask, 1e-9)
	assert.Equal(t, map[string]float64{"agv_1": 60, "agv_2": 60}, s.DistanceByAGV)
	assert.Zero(t, s.WorkloadCV)

	// 200 s recorded: 80 busy, 60 productive, 20 idle.
	assert.InDelta(t, 0.4, s.Utilization, 1e-9)
	assert.InDelta(t, 0.3, s.ProductiveUtilization, 1e-9)
	assert.InDelta(t, 10.0, s.IdlePercent, 1e-9)

	assert.Equal(t, 2, s.ConflictCount)
	assert.InDelta(t, 1.0, s.ConflictsPerHour, 1e-9)
	assert.Equal(t, map[string]int{"head_on": 2}, s.ConflictsByType)
	assert.InDelta(t, 3.0, s.AvgResolutionTime, 1e-9)
}

func TestRecorderEmpty(t *testing.T) {
	s := NewRecorder().Summary(0)
	assert.Zero(t, s.CompletedTasks)
	assert.Zero(t, s.ThroughputPerHour)
	assert.Zero(t, s.Utilization)
	assert.Zero(t, s.AvgResolutionTime)
}
