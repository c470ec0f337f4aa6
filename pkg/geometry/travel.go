package geometry

import (
	"fmt"
	"math"
)

// Default kinematics for a loaded AGV.
const (
	DefaultCruiseSpeed  = 1.5 // m/s
	DefaultAcceleration = 0.5 // m/s^2
	DefaultTurnDelay    = 2.0 // s
)

// TravelTimeModel describes a trapezoidal velocity profile plus fixed
// per-turn and queueing delays.
type TravelTimeModel struct {
	CruiseSpeed  float64
	Acceleration float64
	TurnDelay    float64
}

// DefaultTravelTimeModel returns the model with default kinematics.
func DefaultTravelTimeModel() TravelTimeModel {
	return TravelTimeModel{
		CruiseSpeed:  DefaultCruiseSpeed,
		Acceleration: DefaultAcceleration,
		TurnDelay:    DefaultTurnDelay,
	}
}

// TravelTime is the breakdown of a single trip in seconds.
type TravelTime struct {
	Total     float64 `json:"total"`
	Accel     float64 `json:"accel"`
	Cruise    float64 `json:"cruise"`
	Decel     float64 `json:"decel"`
	Turns     float64 `json:"turns"`
	Queue     float64 `json:"queue"`
	PeakSpeed float64 `json:"peak_speed"`
	Distance  float64 `json:"distance"`
}

// Estimate computes the travel time over distance d with the given number
// of turns and queue wait.
func (m TravelTimeModel) Estimate(d float64, turns int, queueWait float64) (TravelTime, error) {
	if m.CruiseSpeed <= 0 {
		return TravelTime{}, ErrInvalidSpeed
	}
	if m.Acceleration <= 0 {
		return TravelTime{}, ErrInvalidAcceleration
	}
	if d < 0 {
		return TravelTime{}, fmt.Errorf("%w: %f", ErrNegativeDistance, d)
	}
	if turns < 0 {
		return TravelTime{}, fmt.Errorf("%w: %d", ErrNegativeTurns, turns)
	}

	v, a := m.CruiseSpeed, m.Acceleration
	accelDist := v * v / (2 * a)

	tt := TravelTime{
		Turns:    float64(turns) * m.TurnDelay,
		Queue:    queueWait,
		Distance: d,
	}
	if d >= 2*accelDist {
		tt.Accel = v / a
		tt.Decel = tt.Accel
		tt.Cruise = (d - 2*accelDist) / v
		tt.PeakSpeed = v
	} else {
		// Too short to reach cruise speed.
		peak := math.Sqrt(a * d)
		tt.Accel = peak / a
		tt.Decel = tt.Accel
		tt.PeakSpeed = peak
	}
	tt.Total = tt.Accel + tt.Cruise + tt.Decel + tt.Turns + tt.Queue
	return tt, nil
}

// TimeOfDayMultiplier scales travel time by a periodic congestion factor
// 1 + beta*sin^2(pi*(t-peak)/period). Negative beta is treated as 0 and a
// non-positive period disables the factor, so the result is never below 1.
func TimeOfDayMultiplier(t, peak, period, beta float64) float64 {
	if !(period > 0) || !(beta > 0) {
		return 1
	}
	s := math.Sin(math.Pi * (t - peak) / period)
	return 1 + beta*s*s
}

// SimpleTravelTime is constant-speed travel plus a fixed delay per turn.
func SimpleTravelTime(d, speed float64, turns int, turnDelay float64) (float64, error) {
	if speed <= 0 {
		return 0, ErrInvalidSpeed
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %f", ErrNegativeDistance, d)
	}
	if turns < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeTurns, turns)
	}
	return d/speed + float64(turns)*turnDelay, nil
}
