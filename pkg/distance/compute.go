package distance

import (
	"fmt"
	"math"
	"strings"

	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// Algorithm selects the all-pairs strategy.
type Algorithm int

const (
	// Auto picks Dijkstra for large sparse graphs and Floyd-Warshall otherwise.
	Auto Algorithm = iota
	FloydWarshall
	Dijkstra
)

func (a Algorithm) String() string {
	switch a {
	case Auto:
		return "auto"
	case FloydWarshall:
		return "floyd-warshall"
	case Dijkstra:
		return "dijkstra"
	}
	return "unknown"
}

// ParseAlgorithm accepts "auto", "floyd-warshall" (or "fw") and "dijkstra".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "floyd-warshall", "floyd_warshall", "fw":
		return FloydWarshall, nil
	case "dijkstra":
		return Dijkstra, nil
	}
	return Auto, fmt.Errorf("unknown distance algorithm %q", s)
}

// DefaultDenseThreshold is the node count above which Auto considers Dijkstra.
const DefaultDenseThreshold = 400

// Options configures Compute.
type Options struct {
	Algorithm Algorithm
	// Workers fills Dijkstra rows concurrently when greater than 1.
	Workers int
	// MaxNodes bounds N before any work starts; 0 means unbounded.
	MaxNodes int
	// DenseThreshold overrides DefaultDenseThreshold for Auto.
	DenseThreshold int
}

// seed is the direct-edge adjacency shared by both algorithms.
type seed struct {
	ids   []string
	index map[string]int
	// out[i] maps neighbour j to the cheapest direct edge i->j.
	out   []map[int]float64
	edges int
}

func buildSeed(nodes []warehouse.Node, edges []warehouse.Edge) (*seed, error) {
	s := &seed{
		ids:   make([]string, len(nodes)),
		index: make(map[string]int, len(nodes)),
		out:   make([]map[int]float64, len(nodes)),
	}
	for i, n := range nodes {
		if _, dup := s.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		s.ids[i] = n.ID
		s.index[n.ID] = i
		s.out[i] = make(map[int]float64)
	}

	link := func(i, j int, d float64) {
		if i == j {
			return
		}
		if cur, ok := s.out[i][j]; !ok || d < cur {
			if !ok {
				s.edges++
			}
			s.out[i][j] = d
		}
	}
	for _, e := range edges {
		i, ok := s.index[e.From]
		if !ok {
			return nil, fmt.Errorf("%w: edge %q from %q", ErrUnknownNode, e.ID, e.From)
		}
		j, ok := s.index[e.To]
		if !ok {
			return nil, fmt.Errorf("%w: edge %q to %q", ErrUnknownNode, e.ID, e.To)
		}
		if !(e.Distance > 0) || math.IsInf(e.Distance, 1) {
			return nil, fmt.Errorf("%w: edge %q has distance %v", ErrInvalidEdge, e.ID, e.Distance)
		}
		link(i, j, e.Distance)
		if e.Bidirectional {
			link(j, i, e.Distance)
		}
	}
	return s, nil
}

// Compute returns the all-pairs shortest-path matrix for the graph.
// Every edge endpoint must name a node; unreachable pairs are data, not
// errors.
func Compute(nodes []warehouse.Node, edges []warehouse.Edge, opts Options) (*Matrix, error) {
	if opts.MaxNodes > 0 && len(nodes) > opts.MaxNodes {
		return nil, fmt.Errorf("%w: %d nodes, limit %d", ErrTooManyNodes, len(nodes), opts.MaxNodes)
	}

	s, err := buildSeed(nodes, edges)
	if err != nil {
		return nil, err
	}

	algo := opts.Algorithm
	if algo == Auto {
		algo = choose(len(nodes), s.edges, opts.DenseThreshold)
	}

	switch algo {
	case Dijkstra:
		return dijkstraAll(s, opts.Workers)
	case FloydWarshall, Auto:
		return floydWarshall(s), nil
	}
	return nil, fmt.Errorf("unknown distance algorithm %d", int(algo))
}

// choose prefers per-source Dijkstra once the graph is large and sparse.
func choose(n, directedEdges, threshold int) Algorithm {
	if threshold <= 0 {
		threshold = DefaultDenseThreshold
	}
	if n > threshold && directedEdges < n*(n-1)/4 {
		return Dijkstra
	}
	return FloydWarshall
}
