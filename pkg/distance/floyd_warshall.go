package distance

import (
	"math"
)

// floydWarshall relaxes every pair through every intermediate node in
// k, i, j order. O(N^3) time, O(N^2) memory.
func floydWarshall(s *seed) *Matrix {
	m := newMatrix(s.ids, s.index)
	m.algorithm = FloydWarshall
	n := len(s.ids)

	for i, row := range s.out {
		for j, d := range row {
			m.dist[i*n+j] = d
			m.pred[i*n+j] = int32(i)
		}
	}

	var (
		k, i, j      int
		ik, kj, cand float64
	)
	for k = 0; k < n; k++ {
		kRow := k * n
		for i = 0; i < n; i++ {
			iRow := i * n
			ik = m.dist[iRow+k]
			if math.IsInf(ik, 1) {
				continue
			}
			for j = 0; j < n; j++ {
				kj = m.dist[kRow+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < m.dist[iRow+j] {
					m.dist[iRow+j] = cand
					m.pred[iRow+j] = m.pred[kRow+j]
				}
			}
		}
	}
	return m
}
