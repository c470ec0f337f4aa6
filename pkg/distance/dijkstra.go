package distance

import (
	"container/heap"
	"sort"

	"github.com/dd0wney/cluso-retrofit/pkg/parallel"
)

type arc struct {
	to int
	w  float64
}

type item struct {
	node int
	dist float64
}

// minQueue orders by distance, then node index, so equal-cost ties settle
// in a fixed order.
type minQueue []item

func (q minQueue) Len() int { return len(q) }
func (q minQueue) Less(a, b int) bool {
	if q[a].dist != q[b].dist {
		return q[a].dist < q[b].dist
	}
	return q[a].node < q[b].node
}
func (q minQueue) Swap(a, b int) { q[a], q[b] = q[b], q[a] }
func (q *minQueue) Push(x any)   { *q = append(*q, x.(item)) }
func (q *minQueue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// dijkstraAll runs one single-source search per node. Rows are
// independent, so they are filled concurrently when workers > 1.
func dijkstraAll(s *seed, workers int) (*Matrix, error) {
	m := newMatrix(s.ids, s.index)
	m.algorithm = Dijkstra
	n := len(s.ids)

	arcs := make([][]arc, n)
	for i, row := range s.out {
		list := make([]arc, 0, len(row))
		for j, w := range row {
			list = append(list, arc{to: j, w: w})
		}
		sort.Slice(list, func(a, b int) bool { return list[a].to < list[b].to })
		arcs[i] = list
	}

	if workers <= 1 {
		for src := 0; src < n; src++ {
			dijkstraRow(arcs, src, m.dist[src*n:(src+1)*n], m.pred[src*n:(src+1)*n])
		}
		return m, nil
	}

	err := parallel.ForEach(workers, n, func(src int) {
		dijkstraRow(arcs, src, m.dist[src*n:(src+1)*n], m.pred[src*n:(src+1)*n])
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// dijkstraRow fills one row; dist and pred arrive initialised by newMatrix.
func dijkstraRow(arcs [][]arc, src int, dist []float64, pred []int32) {
	done := make([]bool, len(arcs))
	q := &minQueue{{node: src, dist: 0}}

	for q.Len() > 0 {
		cur := heap.Pop(q).(item)
		if done[cur.node] {
			continue
		}
		done[cur.node] = true

		for _, a := range arcs[cur.node] {
			if done[a.to] {
				continue
			}
			cand := cur.dist + a.w
			if cand < dist[a.to] {
				dist[a.to] = cand
				pred[a.to] = int32(cur.node)
				heap.Push(q, item{node: a.to, dist: cand})
			}
		}
	}
}
