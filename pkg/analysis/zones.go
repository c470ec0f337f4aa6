package analysis

import (
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// ZoneMetrics describes how well a zone is served by the navigation graph.
type ZoneMetrics struct {
	ZoneID                 string   `json:"zone_id"`
	ZoneType               string   `json:"zone_type"`
	Area                   float64  `json:"area"`
	EntryNodes             []string `json:"entry_nodes"`
	AvgDistanceToShipping  float64  `json:"avg_distance_to_shipping"`
	AvgDistanceToReceiving float64  `json:"avg_distance_to_receiving"`
	AccessibilityScore     float64  `json:"accessibility_score"`
	TrafficDensity         float64  `json:"traffic_density"`
}

// nearestNodes returns the k nodes closest to p, ties in input order.
func nearestNodes(p geometry.Point, nodes []warehouse.Node, k int) []warehouse.Node {
	positions := make([]geometry.Point, len(nodes))
	for i, n := range nodes {
		positions[i] = n.Position()
	}
	idx := geometry.KClosest(p, positions, k)
	out := make([]warehouse.Node, len(idx))
	for i, j := range idx {
		out[i] = nodes[j]
	}
	return out
}

// ZoneAccessibility scores a zone from its k nearest navigation nodes:
// 0.6 for proximity to the shipping and receiving points plus 0.4 for the
// share of k entry nodes found. A graph with no nodes scores 0.
func ZoneAccessibility(z warehouse.Zone, nodes []warehouse.Node, p Policy) ZoneMetrics {
	m := ZoneMetrics{
		ZoneID:   z.ID,
		ZoneType: z.ZoneType.String(),
		Area:     z.Rect().Area(),
	}
	k := p.AccessibilityNeighbours
	near := nearestNodes(z.Center(), nodes, k)
	if len(near) == 0 || k <= 0 {
		return m
	}

	var toShip, toRecv float64
	for _, n := range near {
		m.EntryNodes = append(m.EntryNodes, n.ID)
		toShip += geometry.Euclidean(n.Position(), p.ShippingPoint)
		toRecv += geometry.Euclidean(n.Position(), p.ReceivingPoint)
	}
	count := float64(len(near))
	m.AvgDistanceToShipping = toShip / count
	m.AvgDistanceToReceiving = toRecv / count

	distanceScore := 1 / (1 + (m.AvgDistanceToShipping+m.AvgDistanceToReceiving)/100)
	entryScore := count / float64(k)
	m.AccessibilityScore = geometry.Clamp(0.6*distanceScore+0.4*entryScore, 0, 1)
	return m
}

// AnalyzeZones scores every zone and fills traffic density from the
// per-node congestion: the busiest entry node's share of the busiest node
// overall.
func AnalyzeZones(zones []warehouse.Zone, nodes []warehouse.Node, congestion []NodeCongestion, p Policy) []ZoneMetrics {
	load := make(map[string]float64, len(congestion))
	peak := 0.0
	for _, c := range congestion {
		load[c.NodeID] = c.Score
		if c.Score > peak {
			peak = c.Score
		}
	}

	out := make([]ZoneMetrics, 0, len(zones))
	for _, z := range zones {
		m := ZoneAccessibility(z, nodes, p)
		if peak > 0 {
			busiest := 0.0
			for _, id := range m.EntryNodes {
				if load[id] > busiest {
					busiest = load[id]
				}
			}
			m.TrafficDensity = busiest / peak
		}
		out = append(out, m)
	}
	return out
}

// ZoneDistances returns centre-to-centre Euclidean distances for every
// ordered pair of distinct zones.
func ZoneDistances(zones []warehouse.Zone) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(zones))
	for _, a := range zones {
		row := make(map[string]float64, len(zones)-1)
		for _, b := range zones {
			if a.ID == b.ID {
				continue
			}
			row[b.ID] = geometry.Euclidean(a.Center(), b.Center())
		}
		out[a.ID] = row
	}
	return out
}

// RecommendZoneImprovements lists suggestions per zone. Zones that need
// nothing are left out.
func RecommendZoneImprovements(metrics []ZoneMetrics, p Policy) map[string][]string {
	out := make(map[string][]string)
	for _, m := range metrics {
		var recs []string
		if m.AccessibilityScore < p.MinAccessibility {
			recs = append(recs, fmt.Sprintf("Low accessibility score (%.2f). Consider adding more entry/exit points.", m.AccessibilityScore))
		}
		if m.AvgDistanceToShipping > p.MaxShippingDistance {
			recs = append(recs, fmt.Sprintf("High distance to shipping (%.1fm). Consider relocating fast-moving items.", m.AvgDistanceToShipping))
		}
		if m.TrafficDensity > p.MaxTrafficDensity {
			recs = append(recs, fmt.Sprintf("High traffic density (%.2f). Consider implementing one-way traffic rules.", m.TrafficDensity))
		}
		if len(recs) > 0 {
			out[m.ZoneID] = recs
		}
	}
	return out
}

// SortedZoneIDs returns the keys of a per-zone map in lexical order.
func SortedZoneIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
