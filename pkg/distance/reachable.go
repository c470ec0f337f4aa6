package distance

import (
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// Reachable answers, for every ordered node pair, whether any path exists.
// It walks the adjacency breadth first and ignores edge lengths, so it is an
// independent check on a computed Matrix.
func Reachable(nodes []warehouse.Node, edges []warehouse.Edge) map[string]map[string]bool {
	adj := navgraph.Adjacency(nodes, edges)
	out := make(map[string]map[string]bool, len(nodes))
	for _, src := range nodes {
		seen := map[string]bool{src.ID: true}
		queue := []string{src.ID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		out[src.ID] = seen
	}
	return out
}

// Components groups nodes into weakly connected components, each listed in
// input order; components are ordered by their first node.
func Components(nodes []warehouse.Node, edges []warehouse.Edge) [][]string {
	parent := make(map[string]string, len(nodes))
	var find func(string) string
	find = func(x string) string {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, n := range nodes {
		parent[n.ID] = n.ID
	}
	for _, e := range edges {
		if _, ok := parent[e.From]; !ok {
			continue
		}
		if _, ok := parent[e.To]; !ok {
			continue
		}
		a, b := find(e.From), find(e.To)
		if a != b {
			parent[b] = a
		}
	}

	slot := make(map[string]int)
	var out [][]string
	for _, n := range nodes {
		root := find(n.ID)
		i, ok := slot[root]
		if !ok {
			i = len(out)
			slot[root] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], n.ID)
	}
	return out
}
