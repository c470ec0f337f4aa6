package constraints

import (
	"errors"
	"math"
	"testing"

	"github.com/dd0wney/cluso-retrofit/pkg/objective"
)

func TestBatteryUpdate(t *testing.T) {
	b := DefaultBattery()
	tests := []struct {
		name    string
		level   float64
		state   objective.AGVState
		minutes float64
		want    float64
	}{
		{"idle", 80, objective.StateIdle, 10, 75},
		{"moving", 80, objective.StateMovingEmpty, 10, 60},
		{"loaded", 80, objective.StateMovingLoaded, 10, 45},
		{"waiting drains at idle rate", 80, objective.StateWaiting, 10, 75},
		{"charging", 50, objective.StateCharging, 2, 70},
		{"charge clamps at 100", 95, objective.StateCharging, 10, 100},
		{"drain clamps at 0", 5, objective.StateMovingLoaded, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Update(tt.level, tt.state, tt.minutes); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Update() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBatteryCheckTask(t *testing.T) {
	b := DefaultBattery()

	// 1 m/s: 600 m loaded is 10 min at 3.5 %/min, 300 m empty is 5 min at 2 %/min.
	ok, err := b.CheckTask(80, 600, 300, 1)
	if err != nil {
		t.Fatalf("CheckTask failed: %v", err)
	}
	if !ok.Feasible || ok.Recommendation != Proceed {
		t.Errorf("Expected feasible task, got %+v", ok)
	}
	if math.Abs(ok.Required-45) > 1e-9 || ok.Available != 60 {
		t.Errorf("Required/Available = %v/%v, want 45/60", ok.Required, ok.Available)
	}

	low, _ := b.CheckTask(50, 600, 300, 1)
	if low.Feasible || low.Recommendation != ChargeFirst {
		t.Errorf("Expected charge-first, got %+v", low)
	}

	if _, err := b.CheckTask(80, 10, 10, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Expected ErrInvalidParameter, got %v", err)
	}
}

func TestBatteryRangeAndCharge(t *testing.T) {
	b := DefaultBattery()
	if got := b.Range(60, 1.5, false); math.Abs(got-1800) > 1e-9 {
		t.Errorf("Range(empty) = %v, want 1800", got)
	}
	if got := b.Range(20, 1.5, true); got != 0 {
		t.Errorf("Range at threshold = %v, want 0", got)
	}
	if got := b.TimeToCharge(45, 0); math.Abs(got-5) > 1e-9 {
		t.Errorf("TimeToCharge(45) = %v, want 5", got)
	}
	if got := b.TimeToCharge(99, 0); got != 0 {
		t.Errorf("TimeToCharge above target = %v, want 0", got)
	}
	dead := Battery{Low: 20, High: 95}
	if got := dead.TimeToCharge(50, 0); !math.IsInf(got, 1) {
		t.Errorf("TimeToCharge without charger = %v, want +Inf", got)
	}
}
