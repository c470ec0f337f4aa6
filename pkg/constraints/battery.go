package constraints

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/objective"
)

// Battery models charge in percent with per-minute drain rates.
type Battery struct {
	Low        float64 // threshold that forces a charge
	High       float64 // charging target
	IdleRate   float64
	MovingRate float64
	LoadedRate float64
	ChargeRate float64
}

// DefaultBattery returns the standard lithium pack model.
func DefaultBattery() Battery {
	return Battery{Low: 20, High: 95, IdleRate: 0.5, MovingRate: 2, LoadedRate: 3.5, ChargeRate: 10}
}

// Rate is the signed drain per minute in state s; charging is negative.
// States without their own rate drain at the idle rate.
func (b Battery) Rate(s objective.AGVState) float64 {
	switch s {
	case objective.StateMovingEmpty:
		return b.MovingRate
	case objective.StateMovingLoaded:
		return b.LoadedRate
	case objective.StateCharging:
		return -b.ChargeRate
	}
	return b.IdleRate
}

// Update returns the level after minutes in state s, clamped to [0, 100].
func (b Battery) Update(level float64, s objective.AGVState, minutes float64) float64 {
	return geometry.Clamp(level-b.Rate(s)*minutes, 0, 100)
}

// TaskCheck is the outcome of CheckTask.
type TaskCheck struct {
	Feasible       bool    `json:"feasible"`
	Level          float64 `json:"current_level"`
	Available      float64 `json:"available_charge"`
	Required       float64 `json:"required_charge"`
	Recommendation string  `json:"recommendation"`
}

const (
	Proceed     = "PROCEED"
	ChargeFirst = "CHARGE_FIRST"
)

// CheckTask reports whether an AGV at level can drive a loaded task of
// taskDistance meters and then reach a charger toCharger meters away empty
// without dropping below the low threshold. speed is in m/s.
func (b Battery) CheckTask(level, taskDistance, toCharger, speed float64) (TaskCheck, error) {
	if speed <= 0 {
		return TaskCheck{}, fmt.Errorf("%w: speed %v", ErrInvalidParameter, speed)
	}
	perMinute := speed * 60
	required := b.LoadedRate*taskDistance/perMinute + b.MovingRate*toCharger/perMinute
	available := level - b.Low
	check := TaskCheck{
		Feasible:       required <= available,
		Level:          level,
		Available:      available,
		Required:       required,
		Recommendation: Proceed,
	}
	if !check.Feasible {
		check.Recommendation = ChargeFirst
	}
	return check, nil
}

// Range is how many meters an AGV at level can travel at speed m/s before
// reaching the low threshold. It is 0 at or below the threshold and +Inf
// when the drain rate is not positive.
func (b Battery) Range(level, speed float64, loaded bool) float64 {
	available := level - b.Low
	if available <= 0 {
		return 0
	}
	rate := b.MovingRate
	if loaded {
		rate = b.LoadedRate
	}
	if rate <= 0 {
		return math.Inf(1)
	}
	return available / rate * speed * 60
}

// TimeToCharge is the minutes needed to reach target; a target of 0
// means the high threshold. It is +Inf when the pack cannot charge.
func (b Battery) TimeToCharge(level, target float64) float64 {
	if target == 0 {
		target = b.High
	}
	need := target - level
	if need <= 0 {
		return 0
	}
	if b.ChargeRate <= 0 {
		return math.Inf(1)
	}
	return need / b.ChargeRate
}
