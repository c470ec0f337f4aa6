package geometry

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// Point is a position on the warehouse floor in meters.
type Point struct {
	X float64 `json:"x" yaml:"x" validate:"gte=0"`
	Y float64 `json:"y" yaml:"y" validate:"gte=0"`
}

// Rect is an axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	X      float64 `json:"x" yaml:"x" validate:"gte=0"`
	Y      float64 `json:"y" yaml:"y" validate:"gte=0"`
	Width  float64 `json:"width" yaml:"width" validate:"gt=0"`
	Height float64 `json:"height" yaml:"height" validate:"gt=0"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns width times height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Expand grows the rectangle by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Contains reports whether p lies inside the rectangle, boundary included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Euclidean returns the straight-line distance between a and b.
func Euclidean(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Weighted sums weight(e)*length(e) over the edges of a path. A missing
// weight counts as 1.0 and a missing length as 0.
func Weighted(pathEdges []string, weights, lengths map[string]float64) float64 {
	total := 0.0
	for _, e := range pathEdges {
		w, ok := weights[e]
		if !ok {
			w = 1.0
		}
		total += w * lengths[e]
	}
	return total
}

// CongestionWeight scales an edge cost by the number of robots sharing it.
// It returns +Inf when capacity is not positive.
func CongestionWeight(agents int, capacity, alpha float64) float64 {
	if capacity <= 0 {
		return math.Inf(1)
	}
	return 1 + alpha*(float64(agents)/capacity)
}

// PathLength sums the Euclidean lengths of consecutive segments.
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Euclidean(points[i-1], points[i])
	}
	return total
}

// TurnThreshold is the heading change, in radians, above which a vertex counts as a turn.
const TurnThreshold = math.Pi / 4

// CountTurns counts vertices where the heading changes by more than 45 degrees.
func CountTurns(points []Point) int {
	if len(points) < 3 {
		return 0
	}
	turns := 0
	for i := 1; i < len(points)-1; i++ {
		v1x, v1y := points[i].X-points[i-1].X, points[i].Y-points[i-1].Y
		v2x, v2y := points[i+1].X-points[i].X, points[i+1].Y-points[i].Y
		n1, n2 := math.Hypot(v1x, v1y), math.Hypot(v2x, v2y)
		if n1 == 0 || n2 == 0 {
			continue
		}
		cos := Clamp((v1x*v2x+v1y*v2y)/(n1*n2), -1, 1)
		if math.Acos(cos) > TurnThreshold {
			turns++
		}
	}
	return turns
}

// Centroid returns the mean of the points, or the origin for an empty set.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// KClosest returns the indices of the k candidates nearest to target.
// Ties keep the input order.
func KClosest(target Point, candidates []Point, k int) []int {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}
	idx := make([]int, len(candidates))
	dist := make([]float64, len(candidates))
	for i, c := range candidates {
		idx[i] = i
		dist[i] = Euclidean(target, c)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dist[idx[a]] < dist[idx[b]]
	})
	if k < len(idx) {
		idx = idx[:k]
	}
	return idx
}

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round rounds v to the given number of decimal places.
func Round[T constraints.Float](v T, places int) T {
	scale := math.Pow(10, float64(places))
	return T(math.Round(float64(v)*scale) / scale)
}
