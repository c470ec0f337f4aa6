package geometry

import (
	"math"
	"testing"
)

func TestDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		manhattan float64
		euclidean float64
	}{
		{"3-4-5", Point{0, 0}, Point{3, 4}, 7, 5},
		{"same point", Point{2, 2}, Point{2, 2}, 0, 0},
		{"horizontal", Point{1, 5}, Point{6, 5}, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Manhattan(tt.a, tt.b); got != tt.manhattan {
				t.Errorf("Manhattan() = %v, want %v", got, tt.manhattan)
			}
			if got := Euclidean(tt.a, tt.b); math.Abs(got-tt.euclidean) > 1e-9 {
				t.Errorf("Euclidean() = %v, want %v", got, tt.euclidean)
			}
		})
	}
}

func TestWeighted(t *testing.T) {
	lengths := map[string]float64{"e1": 10, "e2": 4}
	weights := map[string]float64{"e1": 2}

	// e2 has no weight (1.0), e3 has no length (0).
	got := Weighted([]string{"e1", "e2", "e3"}, weights, lengths)
	if got != 24 {
		t.Errorf("Weighted() = %v, want 24", got)
	}
}

func TestCongestionWeight(t *testing.T) {
	if got := CongestionWeight(2, 4, 0.5); got != 1.25 {
		t.Errorf("CongestionWeight(2, 4, 0.5) = %v, want 1.25", got)
	}
	for _, capacity := range []float64{0, -1} {
		if got := CongestionWeight(3, capacity, 0.5); !math.IsInf(got, 1) {
			t.Errorf("CongestionWeight with capacity %v = %v, want +Inf", capacity, got)
		}
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}

	if c := r.Center(); c != (Point{4, 4}) {
		t.Errorf("Center() = %v, want {4 4}", c)
	}
	if !r.Contains(Point{6, 5}) {
		t.Error("boundary point should be contained")
	}
	if r.Contains(Point{6.1, 5}) {
		t.Error("point outside should not be contained")
	}
	if !r.Expand(0.5).Contains(Point{6.4, 5.4}) {
		t.Error("expanded rect should contain point within margin")
	}
}

func TestCountTurns(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   int
	}{
		{"too short", []Point{{0, 0}, {1, 0}}, 0},
		{"straight", []Point{{0, 0}, {1, 0}, {2, 0}}, 0},
		{"right angle", []Point{{0, 0}, {1, 0}, {1, 1}}, 1},
		{"gentle bend", []Point{{0, 0}, {2, 0}, {4, 1}}, 0},
		{"zigzag", []Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountTurns(tt.points); got != tt.want {
				t.Errorf("CountTurns() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKClosestStableTies(t *testing.T) {
	candidates := []Point{{2, 0}, {0, 1}, {1, 0}, {0, 2}, {-1, 0}}
	got := KClosest(Point{0, 0}, candidates, 3)
	want := []int{1, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("KClosest() returned %d indices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KClosest()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	if got := KClosest(Point{}, candidates, 10); len(got) != len(candidates) {
		t.Errorf("k larger than input should return all, got %d", len(got))
	}
}

func TestCentroidAndPathLength(t *testing.T) {
	if c := Centroid(nil); c != (Point{}) {
		t.Errorf("Centroid(nil) = %v, want origin", c)
	}
	if c := Centroid([]Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}); c != (Point{2, 2}) {
		t.Errorf("Centroid(square) = %v, want {2 2}", c)
	}
	if l := PathLength([]Point{{0, 0}, {3, 4}, {3, 10}}); l != 11 {
		t.Errorf("PathLength() = %v, want 11", l)
	}
}

func TestRoundAndClamp(t *testing.T) {
	if got := Round(30.3333333, 2); got != 30.33 {
		t.Errorf("Round() = %v, want 30.33", got)
	}
	if got := Clamp(1.4, 0.0, 1.0); got != 1.0 {
		t.Errorf("Clamp() = %v, want 1", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp() = %v, want 0", got)
	}
}
