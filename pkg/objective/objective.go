// Package objective scores candidate AGV schedules offline. Evaluate is a
// pure function over externally produced paths, times, battery use and
// conflicts; Recorder aggregates simulation records into fleet metrics.
package objective

import (
	"fmt"
	"math"
	"sort"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
)

// WeightTolerance is how far the weights may drift from summing to 1.
const WeightTolerance = 0.001

// Weights blend the four cost terms into one scalar.
type Weights struct {
	Travel   float64 `json:"travel" yaml:"travel"`
	Time     float64 `json:"time" yaml:"time"`
	Energy   float64 `json:"energy" yaml:"energy"`
	Conflict float64 `json:"conflict" yaml:"conflict"`
}

// DefaultWeights favours travel distance, then time.
func DefaultWeights() Weights {
	return Weights{Travel: 0.35, Time: 0.30, Energy: 0.20, Conflict: 0.15}
}

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 {
	return w.Travel + w.Time + w.Energy + w.Conflict
}

// Validate fails with ErrWeightsSum unless the weights sum to 1 within
// WeightTolerance.
func (w Weights) Validate() error {
	if total := w.Sum(); math.IsNaN(total) || math.Abs(total-1) > WeightTolerance {
		return fmt.Errorf("%w, got %g", ErrWeightsSum, total)
	}
	return nil
}

// Costs are per-unit prices of each term.
type Costs struct {
	PerMeter      float64 `json:"per_meter" yaml:"per_meter"`
	PerSecond     float64 `json:"per_second" yaml:"per_second"`
	PerBatteryPct float64 `json:"per_battery_pct" yaml:"per_battery_pct"`
	PerConflict   float64 `json:"per_conflict" yaml:"per_conflict"`
}

// DefaultCosts returns the standard unit costs.
func DefaultCosts() Costs {
	return Costs{PerMeter: 0.01, PerSecond: 0.005, PerBatteryPct: 0.1, PerConflict: 5.0}
}

// Validate rejects negative unit costs.
func (c Costs) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"per_meter", c.PerMeter},
		{"per_second", c.PerSecond},
		{"per_battery_pct", c.PerBatteryPct},
		{"per_conflict", c.PerConflict},
	} {
		if f.value < 0 || math.IsNaN(f.value) {
			return fmt.Errorf("%w: %s = %v", ErrNegativeCost, f.name, f.value)
		}
	}
	return nil
}

// Conflict is one recorded interaction between AGVs.
type Conflict struct {
	Time           float64        `json:"time"`
	Agents         []string       `json:"agents"`
	Type           string         `json:"type"`
	Location       geometry.Point `json:"location"`
	ResolutionTime float64        `json:"resolution_time"`
}

// Input is a candidate schedule. All maps are keyed by AGV id.
type Input struct {
	Paths        map[string][]string `json:"paths"`
	TravelTimes  map[string]float64  `json:"travel_times"`
	WaitTimes    map[string]float64  `json:"wait_times"`
	ServiceTimes map[string]float64  `json:"service_times"`
	// BatteryUsed is start minus end charge in percent.
	BatteryUsed map[string]float64 `json:"battery_used"`
	Conflicts   []Conflict         `json:"conflicts,omitempty"`
	// ConflictCount is used when Conflicts is empty.
	ConflictCount int `json:"conflict_count,omitempty"`
}

// NumConflicts returns the number of conflicts the input carries.
func (in Input) NumConflicts() int {
	if len(in.Conflicts) > 0 {
		return len(in.Conflicts)
	}
	return in.ConflictCount
}

// DistanceLookup resolves shortest distances between nodes.
// *distance.Matrix implements it.
type DistanceLookup interface {
	Has(id string) bool
	Distance(from, to string) (float64, bool)
}

// Components holds the four cost terms.
type Components struct {
	Travel   float64 `json:"travel"`
	Time     float64 `json:"time"`
	Energy   float64 `json:"energy"`
	Conflict float64 `json:"conflict"`
}

// Result is the scored schedule.
type Result struct {
	Total float64 `json:"total_cost"`
	// Unweighted costs, already multiplied by unit prices.
	Costs Components `json:"costs"`
	// Costs multiplied by their weights; these sum to Total.
	Weighted Components `json:"weighted_components"`
	// TravelDistance is the raw path length in meters.
	TravelDistance float64 `json:"travel_distance"`
}

// Evaluate scores a schedule. It fails when the weights do not sum to 1,
// a unit cost is negative, a path names an unknown node or a path leg
// has no route.
func Evaluate(in Input, w Weights, c Costs, distances DistanceLookup) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, err
	}
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	meters := 0.0
	for _, agent := range sortedKeys(in.Paths) {
		path := in.Paths[agent]
		for _, id := range path {
			if !distances.Has(id) {
				return Result{}, fmt.Errorf("%w: agent %s, node %q", ErrUnknownNode, agent, id)
			}
		}
		for i := 0; i+1 < len(path); i++ {
			d, ok := distances.Distance(path[i], path[i+1])
			if !ok {
				return Result{}, fmt.Errorf("%w: agent %s, %s -> %s", ErrUnreachableLeg, agent, path[i], path[i+1])
			}
			meters += d
		}
	}

	seconds := sum(in.TravelTimes) + sum(in.WaitTimes) + sum(in.ServiceTimes)
	costs := Components{
		Travel:   meters * c.PerMeter,
		Time:     seconds * c.PerSecond,
		Energy:   sum(in.BatteryUsed) * c.PerBatteryPct,
		Conflict: float64(in.NumConflicts()) * c.PerConflict,
	}
	weighted := Components{
		Travel:   w.Travel * costs.Travel,
		Time:     w.Time * costs.Time,
		Energy:   w.Energy * costs.Energy,
		Conflict: w.Conflict * costs.Conflict,
	}
	return Result{
		Total:          weighted.Travel + weighted.Time + weighted.Energy + weighted.Conflict,
		Costs:          costs,
		Weighted:       weighted,
		TravelDistance: meters,
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sum adds map values in key order so results are reproducible.
func sum(m map[string]float64) float64 {
	total := 0.0
	for _, k := range sortedKeys(m) {
		total += m[k]
	}
	return total
}
