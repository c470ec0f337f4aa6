package feasibility

// Thresholds are the fixed band boundaries of the scorer.
type Thresholds struct {
	OptimalAisleWidth  float64 `json:"optimal_aisle_width" yaml:"optimal_aisle_width" validate:"gtfield=MinAisleWidth"`
	MinAisleWidth      float64 `json:"min_aisle_width" yaml:"min_aisle_width" validate:"gtfield=MarginalAisleWidth"`
	MarginalAisleWidth float64 `json:"marginal_aisle_width" yaml:"marginal_aisle_width" validate:"gtfield=PoorAisleWidth"`
	PoorAisleWidth     float64 `json:"poor_aisle_width" yaml:"poor_aisle_width" validate:"gt=0"`

	// SpacingTolerance is the largest spread between aisle gaps that still
	// counts as evenly spaced.
	SpacingTolerance float64 `json:"spacing_tolerance" yaml:"spacing_tolerance" validate:"gte=0"`

	// Utilization bands: [OptimalLow, OptimalHigh] is optimal,
	// [AcceptableLow, OptimalLow) and (OptimalHigh, AcceptableHigh] are
	// acceptable, anything else is outside.
	UtilizationOptimalLow     float64 `json:"utilization_optimal_low" yaml:"utilization_optimal_low" validate:"gte=0,ltefield=UtilizationOptimalHigh"`
	UtilizationOptimalHigh    float64 `json:"utilization_optimal_high" yaml:"utilization_optimal_high" validate:"ltefield=UtilizationAcceptableHigh"`
	UtilizationAcceptableLow  float64 `json:"utilization_acceptable_low" yaml:"utilization_acceptable_low" validate:"gte=0,ltefield=UtilizationOptimalLow"`
	UtilizationAcceptableHigh float64 `json:"utilization_acceptable_high" yaml:"utilization_acceptable_high"`

	// FeasibleScore is the lowest total that counts as feasible.
	FeasibleScore float64 `json:"feasible_score" yaml:"feasible_score" validate:"gte=0,lte=10"`
}

// DefaultThresholds returns the standard AGV retrofit thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		OptimalAisleWidth:         3.5,
		MinAisleWidth:             3.0,
		MarginalAisleWidth:        2.5,
		PoorAisleWidth:            2.0,
		SpacingTolerance:          1.0,
		UtilizationOptimalLow:     0.3,
		UtilizationOptimalHigh:    0.5,
		UtilizationAcceptableLow:  0.2,
		UtilizationAcceptableHigh: 0.6,
		FeasibleScore:             5.0,
	}
}
