package constraints

import (
	"fmt"
	"math"
)

const (
	// Gravity in m/s^2.
	Gravity = 9.81
	// SensorClearance is the extra width a single-lane aisle needs for
	// obstacle sensors.
	SensorClearance = 0.2
)

// AisleWidthCheck is the outcome of AisleWidth.
type AisleWidthCheck struct {
	Satisfied       bool    `json:"satisfied"`
	AisleWidth      float64 `json:"aisle_width"`
	MinimumRequired float64 `json:"minimum_required"`
	Margin          float64 `json:"margin"`
	Bidirectional   bool    `json:"bidirectional"`
}

// AisleWidth checks W >= w + 2*buffer + clearance for one-way traffic and
// W >= 2*w + 3*buffer for two-way traffic.
func AisleWidth(aisleWidth, agvWidth, buffer float64, bidirectional bool) AisleWidthCheck {
	minimum := agvWidth + 2*buffer + SensorClearance
	if bidirectional {
		minimum = 2*agvWidth + 3*buffer
	}
	return AisleWidthCheck{
		Satisfied:       aisleWidth >= minimum,
		AisleWidth:      aisleWidth,
		MinimumRequired: minimum,
		Margin:          aisleWidth - minimum,
		Bidirectional:   bidirectional,
	}
}

// FloorLoadCheck is the outcome of FloorLoad. Pressures are in N/m^2.
type FloorLoadCheck struct {
	Satisfied       bool    `json:"satisfied"`
	StaticPressure  float64 `json:"static_pressure_pa"`
	DynamicPressure float64 `json:"dynamic_pressure_pa"`
	Capacity        float64 `json:"floor_capacity_pa"`
	UtilizationPct  float64 `json:"utilization_pct"`
}

// FloorLoad compares the loaded AGV's dynamic pressure over its contact
// area against a floor rated at capacity kg/m^2.
func FloorLoad(agvMass, payload, contactArea, capacity, acceleration float64) (FloorLoadCheck, error) {
	if contactArea <= 0 {
		return FloorLoadCheck{}, fmt.Errorf("%w: contact area %v", ErrInvalidParameter, contactArea)
	}
	if capacity <= 0 {
		return FloorLoadCheck{}, fmt.Errorf("%w: floor capacity %v", ErrInvalidParameter, capacity)
	}
	static := (agvMass + payload) * Gravity / contactArea
	dynamic := static * (1 + acceleration/Gravity)
	capacityPa := capacity * Gravity
	return FloorLoadCheck{
		Satisfied:       dynamic <= capacityPa,
		StaticPressure:  static,
		DynamicPressure: dynamic,
		Capacity:        capacityPa,
		UtilizationPct:  dynamic / capacityPa * 100,
	}, nil
}

// AisleCapacity is how many AGVs fit in an aisle nose to tail, halved
// for two-way aisles, never less than one.
func AisleCapacity(aisleLength, agvLength, following float64, bidirectional bool) int {
	slot := agvLength + following
	if slot <= 0 {
		return 1
	}
	capacity := int(math.Floor(aisleLength / slot))
	if bidirectional {
		capacity /= 2
	}
	return max(1, capacity)
}
