package distance

import (
	"math"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
)

// Unreachable is the serialized distance for a pair with no path.
const Unreachable = -1.0

// Matrix holds all-pairs shortest distances in row-major order. Unreachable
// pairs hold +Inf; the diagonal is 0.
type Matrix struct {
	ids       []string
	index     map[string]int
	dist      []float64
	pred      []int32 // pred[i*n+j]: node before j on the path from i, -1 if none
	algorithm Algorithm
}

func newMatrix(ids []string, index map[string]int) *Matrix {
	n := len(ids)
	m := &Matrix{
		ids:   ids,
		index: index,
		dist:  make([]float64, n*n),
		pred:  make([]int32, n*n),
	}
	inf := math.Inf(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.dist[i*n+j] = inf
			m.pred[i*n+j] = -1
		}
		m.dist[i*n+i] = 0
		m.pred[i*n+i] = int32(i)
	}
	return m
}

// Len is the number of nodes.
func (m *Matrix) Len() int { return len(m.ids) }

// IDs returns node ids in matrix order.
func (m *Matrix) IDs() []string {
	return append([]string(nil), m.ids...)
}

// Algorithm reports which algorithm filled the matrix.
func (m *Matrix) Algorithm() Algorithm { return m.algorithm }

// Index returns the matrix position of a node id.
func (m *Matrix) Index(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// At returns the raw distance between positions i and j (+Inf if unreachable).
func (m *Matrix) At(i, j int) float64 {
	return m.dist[i*len(m.ids)+j]
}

// Has reports whether the node id is in the matrix.
func (m *Matrix) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Distance returns the shortest distance between two nodes. The boolean is
// false when either id is unknown or no path exists.
func (m *Matrix) Distance(from, to string) (float64, bool) {
	i, ok := m.index[from]
	if !ok {
		return 0, false
	}
	j, ok := m.index[to]
	if !ok {
		return 0, false
	}
	d := m.At(i, j)
	if math.IsInf(d, 1) {
		return d, false
	}
	return d, true
}

// Path reconstructs a shortest path between two nodes, endpoints included.
func (m *Matrix) Path(from, to string) ([]string, bool) {
	i, ok := m.index[from]
	if !ok {
		return nil, false
	}
	j, ok := m.index[to]
	if !ok {
		return nil, false
	}
	n := len(m.ids)
	if math.IsInf(m.dist[i*n+j], 1) {
		return nil, false
	}

	rev := []int{j}
	for cur := j; cur != i; {
		p := int(m.pred[i*n+cur])
		if p < 0 || len(rev) > n {
			return nil, false
		}
		rev = append(rev, p)
		cur = p
	}

	path := make([]string, len(rev))
	for k := range rev {
		path[k] = m.ids[rev[len(rev)-1-k]]
	}
	return path, true
}

// UnreachablePairs counts ordered pairs (i != j) with no path.
func (m *Matrix) UnreachablePairs() int {
	count := 0
	for _, d := range m.dist {
		if math.IsInf(d, 1) {
			count++
		}
	}
	return count
}

// Keyed converts the matrix to a nested map. Unreachable pairs become -1
// and distances are rounded to two decimals.
func (m *Matrix) Keyed() map[string]map[string]float64 {
	n := len(m.ids)
	out := make(map[string]map[string]float64, n)
	for i, from := range m.ids {
		row := make(map[string]float64, n)
		for j, to := range m.ids {
			d := m.dist[i*n+j]
			if math.IsInf(d, 1) {
				row[to] = Unreachable
			} else {
				row[to] = geometry.Round(d, 2)
			}
		}
		out[from] = row
	}
	return out
}
