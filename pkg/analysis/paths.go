package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// PathFinder answers shortest-path queries. *distance.Matrix implements it.
type PathFinder interface {
	Distance(from, to string) (float64, bool)
	Path(from, to string) ([]string, bool)
}

// CriticalPath is a high-traffic route likely to become a bottleneck.
type CriticalPath struct {
	ID              string   `json:"path_id"`
	From            string   `json:"start_node"`
	To              string   `json:"end_node"`
	Nodes           []string `json:"nodes"`
	Distance        float64  `json:"total_distance"`
	TrafficVolume   float64  `json:"traffic_volume"`
	Intersections   int      `json:"intersection_count"`
	BottleneckScore float64  `json:"bottleneck_score"`
}

// NodeCongestion is the accumulated critical-path load on one node.
type NodeCongestion struct {
	NodeID string  `json:"node_id"`
	Score  float64 `json:"score"`
}

type route struct {
	from, to string
	volume   float64
}

// BottleneckScore weighs traffic volume, intersections crossed and length.
func BottleneckScore(volume float64, intersections int, dist float64) float64 {
	if volume <= 0 {
		return 0
	}
	score := 0.5*math.Min(1, volume/100) +
		0.3*math.Min(1, float64(intersections)/3) +
		0.2*math.Min(1, dist/50)
	return math.Min(1, score)
}

// keyRoutes enumerates shipping-receiving, shipping-zone and
// receiving-zone pairs in that order. Drop nodes count as shipping
// endpoints and pickup nodes as receiving endpoints.
func keyRoutes(nodes []warehouse.Node, zones []warehouse.Zone, p Policy) []route {
	var shipping, receiving []string
	for _, n := range nodes {
		switch n.NodeType {
		case warehouse.NodeShipping, warehouse.NodeDrop:
			shipping = append(shipping, n.ID)
		case warehouse.NodeReceiving, warehouse.NodePickup:
			receiving = append(receiving, n.ID)
		}
	}
	var zoneNodes []string
	for _, z := range zones {
		for _, n := range nearestNodes(z.Center(), nodes, p.ZoneKeyNodes) {
			zoneNodes = append(zoneNodes, n.ID)
		}
	}

	var routes []route
	add := func(from, to []string, volume float64) {
		for _, a := range from {
			for _, b := range to {
				if a == b {
					continue
				}
				v := volume
				if o, ok := p.VolumeOverrides[VolumeKey(a, b)]; ok {
					v = o
				}
				routes = append(routes, route{from: a, to: b, volume: v})
			}
		}
	}
	add(shipping, receiving, p.ShippingReceivingVolume)
	add(shipping, zoneNodes, p.ShippingZoneVolume)
	add(receiving, zoneNodes, p.ReceivingZoneVolume)
	return routes
}

// CriticalPaths scores every key route along its shortest path and keeps
// those above the bottleneck threshold, highest score first. Unreachable
// routes are skipped.
func CriticalPaths(nodes []warehouse.Node, zones []warehouse.Zone, finder PathFinder, p Policy) []CriticalPath {
	junction := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		junction[n.ID] = n.IsIntersection
	}

	var out []CriticalPath
	for _, r := range keyRoutes(nodes, zones, p) {
		d, ok := finder.Distance(r.from, r.to)
		if !ok {
			continue
		}
		hops, ok := finder.Path(r.from, r.to)
		if !ok {
			continue
		}
		crossings := 0
		for _, id := range hops {
			if junction[id] {
				crossings++
			}
		}
		score := BottleneckScore(r.volume, crossings, d)
		if score <= p.BottleneckThreshold {
			continue
		}
		out = append(out, CriticalPath{
			ID:              fmt.Sprintf("path_%d", len(out)),
			From:            r.from,
			To:              r.to,
			Nodes:           hops,
			Distance:        d,
			TrafficVolume:   r.volume,
			Intersections:   crossings,
			BottleneckScore: score,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BottleneckScore > out[j].BottleneckScore
	})
	return out
}

// Congestion sums volume times bottleneck score over the critical paths
// through each node, busiest first. Equal scores sort by node id.
func Congestion(paths []CriticalPath) []NodeCongestion {
	load := make(map[string]float64)
	for _, cp := range paths {
		for _, id := range cp.Nodes {
			load[id] += cp.TrafficVolume * cp.BottleneckScore
		}
	}
	out := make([]NodeCongestion, 0, len(load))
	for id, s := range load {
		out = append(out, NodeCongestion{NodeID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].NodeID < out[j].NodeID
	})
	return out
}
