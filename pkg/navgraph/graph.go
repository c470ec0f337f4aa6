package navgraph

import (
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// Graph is a navigation node and edge set.
type Graph struct {
	Nodes []warehouse.Node
	Edges []warehouse.Edge
}

// Adjacency returns the graph's neighbour lists.
func (g *Graph) Adjacency() map[string][]string {
	return Adjacency(g.Nodes, g.Edges)
}

// Adjacency maps every node id to the ids reachable over one edge, in edge
// order. Bidirectional edges appear in both lists.
func Adjacency(nodes []warehouse.Node, edges []warehouse.Edge) map[string][]string {
	adj := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		adj[n.ID] = []string{}
	}
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
		if e.Bidirectional {
			adj[e.To] = append(adj[e.To], e.From)
		}
	}
	return adj
}

// CountByType tallies nodes per node type.
func CountByType(nodes []warehouse.Node) map[warehouse.NodeType]int {
	counts := make(map[warehouse.NodeType]int)
	for _, n := range nodes {
		counts[n.NodeType]++
	}
	return counts
}
