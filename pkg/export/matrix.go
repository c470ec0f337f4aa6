package export

import (
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// MatrixFormat selects the distance matrix layout.
type MatrixFormat string

const (
	Nested MatrixFormat = "nested_dict"
	Flat   MatrixFormat = "flat_list"
)

// ParseMatrixFormat accepts "nested" and "flat" as well as the full names.
func ParseMatrixFormat(s string) (MatrixFormat, error) {
	switch s {
	case "", "nested", string(Nested):
		return Nested, nil
	case "flat", string(Flat):
		return Flat, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

type DistanceEntry struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
}

// DistanceStats summarises the positive (reachable, off-diagonal) entries.
type DistanceStats struct {
	TotalConnections int     `json:"total_connections"`
	MinDistance      float64 `json:"min_distance"`
	MaxDistance      float64 `json:"max_distance"`
	AvgDistance      float64 `json:"avg_distance"`
}

// DistanceDocument is a standalone distance matrix export.
type DistanceDocument struct {
	Format     MatrixFormat                  `json:"format"`
	Units      string                        `json:"units"`
	Matrix     map[string]map[string]float64 `json:"distance_matrix,omitempty"`
	Distances  []DistanceEntry               `json:"distances,omitempty"`
	Statistics *DistanceStats                `json:"statistics,omitempty"`
}

// DistanceMatrix exports a keyed matrix, restricted to ids when ids is
// non-empty. Flat entries are ordered by source then target id.
func DistanceMatrix(m map[string]map[string]float64, ids []string, format MatrixFormat) (DistanceDocument, error) {
	keep := func(string) bool { return true }
	if len(ids) > 0 {
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		keep = func(id string) bool { return set[id] }
	}

	filtered := make(map[string]map[string]float64)
	var entries []DistanceEntry
	for _, from := range sortedKeys(m) {
		if !keep(from) {
			continue
		}
		row := make(map[string]float64)
		for _, to := range sortedKeys(m[from]) {
			if !keep(to) {
				continue
			}
			d := m[from][to]
			row[to] = d
			entries = append(entries, DistanceEntry{From: from, To: to, Distance: d})
		}
		filtered[from] = row
	}

	doc := DistanceDocument{Format: format, Units: "meters", Statistics: distanceStats(entries)}
	switch format {
	case Nested:
		doc.Matrix = filtered
	case Flat:
		doc.Distances = entries
	default:
		return DistanceDocument{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return doc, nil
}

func distanceStats(entries []DistanceEntry) *DistanceStats {
	var s DistanceStats
	var total float64
	for _, e := range entries {
		if e.Distance <= 0 {
			continue
		}
		if s.TotalConnections == 0 || e.Distance < s.MinDistance {
			s.MinDistance = e.Distance
		}
		if e.Distance > s.MaxDistance {
			s.MaxDistance = e.Distance
		}
		total += e.Distance
		s.TotalConnections++
	}
	if s.TotalConnections == 0 {
		return nil
	}
	s.AvgDistance = geometry.Round(total/float64(s.TotalConnections), 2)
	return &s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type GraphNode struct {
	ID       string          `json:"id"`
	NodeType string          `json:"node_type"`
	ZoneType string          `json:"zone_type"`
	Position *geometry.Point `json:"position,omitempty"`
}

type GraphStats struct {
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// GraphDocument is a standalone navigation graph export.
type GraphDocument struct {
	Nodes      []GraphNode         `json:"nodes"`
	Edges      []warehouse.Edge    `json:"edges"`
	Adjacency  map[string][]string `json:"adjacency_list"`
	Statistics GraphStats          `json:"statistics"`
}

// NavigationGraph exports nodes, edges and their adjacency.
func NavigationGraph(nodes []warehouse.Node, edges []warehouse.Edge, positions bool) GraphDocument {
	doc := GraphDocument{
		Nodes:      make([]GraphNode, 0, len(nodes)),
		Edges:      nonNil(edges),
		Adjacency:  navgraph.Adjacency(nodes, edges),
		Statistics: GraphStats{NodeCount: len(nodes), EdgeCount: len(edges)},
	}
	for _, n := range nodes {
		g := GraphNode{ID: n.ID, NodeType: n.NodeType.String(), ZoneType: n.ZoneType.String()}
		if positions {
			p := n.Position()
			g.Position = &p
		}
		doc.Nodes = append(doc.Nodes, g)
	}
	return doc
}
