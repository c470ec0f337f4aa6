package constraints

import (
	"errors"
	"math"
	"testing"
)

func TestAisleWidth(t *testing.T) {
	tests := []struct {
		name          string
		aisle         float64
		bidirectional bool
		wantMin       float64
		wantOK        bool
	}{
		{"one-way fits", 3.0, false, 2.2, true},
		{"one-way exact", 2.2, false, 2.2, true},
		{"one-way too narrow", 2.0, false, 2.2, false},
		{"two-way fits", 3.5, true, 3.5, true},
		{"two-way too narrow", 3.0, true, 3.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AisleWidth(tt.aisle, 1.0, 0.5, tt.bidirectional)
			if math.Abs(got.MinimumRequired-tt.wantMin) > 1e-9 {
				t.Errorf("MinimumRequired = %v, want %v", got.MinimumRequired, tt.wantMin)
			}
			if got.Satisfied != tt.wantOK {
				t.Errorf("Satisfied = %v, want %v", got.Satisfied, tt.wantOK)
			}
			if math.Abs(got.Margin-(tt.aisle-tt.wantMin)) > 1e-9 {
				t.Errorf("Margin = %v", got.Margin)
			}
		})
	}
}

func TestFloorLoad(t *testing.T) {
	got, err := FloorLoad(300, 500, 1.5, 5000, 0.5)
	if err != nil {
		t.Fatalf("FloorLoad failed: %v", err)
	}
	wantStatic := 800 * Gravity / 1.5
	if math.Abs(got.StaticPressure-wantStatic) > 1e-9 {
		t.Errorf("StaticPressure = %v, want %v", got.StaticPressure, wantStatic)
	}
	wantDynamic := wantStatic * (1 + 0.5/Gravity)
	if math.Abs(got.DynamicPressure-wantDynamic) > 1e-9 {
		t.Errorf("DynamicPressure = %v, want %v", got.DynamicPressure, wantDynamic)
	}
	if !got.Satisfied {
		t.Error("Expected a 5000 kg/m^2 floor to carry a loaded AGV")
	}

	heavy, _ := FloorLoad(3000, 5000, 0.5, 5000, 0.5)
	if heavy.Satisfied {
		t.Error("Expected an 8 t point load to overload the floor")
	}

	if _, err := FloorLoad(300, 500, 0, 5000, 0.5); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero contact area error = %v", err)
	}
	if _, err := FloorLoad(300, 500, 1, -1, 0.5); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative capacity error = %v", err)
	}
}

func TestAisleCapacity(t *testing.T) {
	tests := []struct {
		length        float64
		bidirectional bool
		want          int
	}{
		{50, false, 20},
		{50, true, 10},
		{1, false, 1},
		{1, true, 1},
	}
	for _, tt := range tests {
		if got := AisleCapacity(tt.length, 1.5, 1.0, tt.bidirectional); got != tt.want {
			t.Errorf("AisleCapacity(%v, bidirectional=%v) = %d, want %d", tt.length, tt.bidirectional, got, tt.want)
		}
	}
	if got := AisleCapacity(10, 0, 0, false); got != 1 {
		t.Errorf("zero slot capacity = %d, want 1", got)
	}
}
