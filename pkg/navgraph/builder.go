package navgraph

import (
	"fmt"
	"math"
	"sort"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// Builder defaults.
const (
	DefaultGridSpacing      = 1.0
	DefaultClearance        = 0.5
	DefaultConnectionFactor = 1.5
	DefaultEntryFactor      = 2.0

	ReceivingNodeID = "receiving"
	ShippingNodeID  = "shipping"

	// IntersectionDegree is the neighbour count at which a node becomes an intersection.
	IntersectionDegree = 3

	// GridNodeCeiling caps the grid when Options.MaxNodes is zero.
	GridNodeCeiling = 1 << 24
)

// Options tunes grid construction. Zero values select the defaults.
type Options struct {
	GridSpacing float64
	Clearance   float64
	// ConnectionFactor times GridSpacing is the maximum edge length.
	ConnectionFactor float64
	// EntryFactor times GridSpacing is the zone-entry tagging radius.
	EntryFactor float64
	// MaxNodes bounds the grid size; 0 means GridNodeCeiling.
	MaxNodes int
}

// DefaultOptions returns the default builder options.
func DefaultOptions() Options {
	return Options{
		GridSpacing:      DefaultGridSpacing,
		Clearance:        DefaultClearance,
		ConnectionFactor: DefaultConnectionFactor,
		EntryFactor:      DefaultEntryFactor,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.GridSpacing == 0 {
		o.GridSpacing = d.GridSpacing
	}
	if o.Clearance == 0 {
		o.Clearance = d.Clearance
	}
	if o.ConnectionFactor == 0 {
		o.ConnectionFactor = d.ConnectionFactor
	}
	if o.EntryFactor == 0 {
		o.EntryFactor = d.EntryFactor
	}
	return o
}

// Build places grid nodes over the floor, connects neighbours and tags
// intersections. Identical input yields identical nodes, edges and ids.
//
// Grid x coordinates run along Geometry.Width and y along Geometry.Length,
// the same frame zone rectangles use. Points are scanned x outer, y inner.
func Build(g Geometry, opts Options) (*Graph, error) {
	opts = opts.withDefaults()
	spacing := opts.GridSpacing
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpacing, spacing)
	}
	if !(g.Width > 0) || !(g.Length > 0) || math.IsInf(g.Width, 0) || math.IsInf(g.Length, 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidGeometry, g.Width, g.Length)
	}

	limit := opts.MaxNodes
	if limit <= 0 {
		limit = GridNodeCeiling
	}
	fx, fy := gridCount(g.Width, spacing), gridCount(g.Length, spacing)
	if total := fx * fy; !(total <= float64(limit)) {
		return nil, fmt.Errorf("%w: %.0f grid points, limit %d", ErrGridTooLarge, total, limit)
	}
	nx, ny := int(fx), int(fy)

	provisional := placeNodes(g, opts, nx, ny)
	edges := connectNodes(provisional, spacing*opts.ConnectionFactor)

	return &Graph{
		Nodes: tagIntersections(provisional, edges),
		Edges: edges,
	}, nil
}

// gridCount is the number of points i*spacing that stay within [0, extent].
// It stays in float64 so oversized floors fail the limit check instead of
// overflowing int.
func gridCount(extent, spacing float64) float64 {
	return math.Floor(extent/spacing+1e-9) + 1
}

func placeNodes(g Geometry, opts Options, nx, ny int) []warehouse.Node {
	obstacles := make([]geometry.Rect, len(g.Obstacles))
	for i, o := range g.Obstacles {
		obstacles[i] = o.Expand(opts.Clearance)
	}
	threshold := opts.GridSpacing * opts.EntryFactor

	nodes := make([]warehouse.Node, 0, nx*ny+2)
	counter := 0
	for ix := 0; ix < nx; ix++ {
		x := float64(ix) * opts.GridSpacing
		for iy := 0; iy < ny; iy++ {
			p := geometry.Point{X: x, Y: float64(iy) * opts.GridSpacing}
			if blocked(p, obstacles) {
				continue
			}

			node := warehouse.Node{
				ID:       fmt.Sprintf("grid_%d", counter),
				X:        p.X,
				Y:        p.Y,
				ZoneType: warehouse.ZoneAisle,
				NodeType: warehouse.NodeWaypoint,
			}
			for _, z := range g.Zones {
				if z.Entry != nil && geometry.Euclidean(p, *z.Entry) <= threshold {
					node.NodeType = warehouse.NodeZoneEntry
					node.ZoneType = z.ZoneType
					node.ZoneID = z.ID
					break
				}
			}
			nodes = append(nodes, node)
			counter++
		}
	}

	if g.Receiving != nil {
		nodes = append(nodes, warehouse.Node{
			ID:       ReceivingNodeID,
			X:        g.Receiving.X,
			Y:        g.Receiving.Y,
			ZoneType: warehouse.ZonePickup,
			NodeType: warehouse.NodeReceiving,
		})
	}
	if g.Shipping != nil {
		nodes = append(nodes, warehouse.Node{
			ID:       ShippingNodeID,
			X:        g.Shipping.X,
			Y:        g.Shipping.Y,
			ZoneType: warehouse.ZoneDrop,
			NodeType: warehouse.NodeShipping,
		})
	}
	return nodes
}

func blocked(p geometry.Point, obstacles []geometry.Rect) bool {
	for _, o := range obstacles {
		if o.Contains(p) {
			return true
		}
	}
	return false
}

type cellKey struct{ cx, cy int }

type pairKey struct{ lo, hi int }

// connectNodes links every pair closer than maxDist. Pairs are emitted in
// ascending (i, j) order with j > i, matching a full quadratic scan.
func connectNodes(nodes []warehouse.Node, maxDist float64) []warehouse.Edge {
	cells := make(map[cellKey][]int)
	cellOf := func(n warehouse.Node) cellKey {
		return cellKey{int(math.Floor(n.X / maxDist)), int(math.Floor(n.Y / maxDist))}
	}
	for i, n := range nodes {
		k := cellOf(n)
		cells[k] = append(cells[k], i)
	}

	seen := make(map[pairKey]struct{})
	var edges []warehouse.Edge
	candidates := make([]int, 0, 16)

	for i, a := range nodes {
		lo := cellOf(warehouse.Node{X: a.X - maxDist, Y: a.Y - maxDist})
		hi := cellOf(warehouse.Node{X: a.X + maxDist, Y: a.Y + maxDist})
		candidates = candidates[:0]
		for cx := lo.cx; cx <= hi.cx; cx++ {
			for cy := lo.cy; cy <= hi.cy; cy++ {
				for _, j := range cells[cellKey{cx, cy}] {
					if j > i {
						candidates = append(candidates, j)
					}
				}
			}
		}
		sort.Ints(candidates)

		for _, j := range candidates {
			b := nodes[j]
			d := geometry.Euclidean(a.Position(), b.Position())
			if d <= 0 || d > maxDist {
				continue
			}
			key := pairKey{i, j}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, warehouse.Edge{
				ID:            fmt.Sprintf("nav_edge_%d", len(edges)),
				From:          a.ID,
				To:            b.ID,
				Distance:      d,
				Bidirectional: true,
			})
		}
	}
	return edges
}

// tagIntersections materializes final nodes from the provisional set.
// Nodes with IntersectionDegree or more distinct neighbours are flagged,
// and plain waypoints are promoted to intersections.
func tagIntersections(provisional []warehouse.Node, edges []warehouse.Edge) []warehouse.Node {
	neighbours := make(map[string]map[string]struct{}, len(provisional))
	link := func(a, b string) {
		set, ok := neighbours[a]
		if !ok {
			set = make(map[string]struct{})
			neighbours[a] = set
		}
		set[b] = struct{}{}
	}
	for _, e := range edges {
		link(e.From, e.To)
		link(e.To, e.From)
	}

	final := make([]warehouse.Node, len(provisional))
	for i, n := range provisional {
		if len(neighbours[n.ID]) >= IntersectionDegree {
			n.IsIntersection = true
			if n.NodeType == warehouse.NodeWaypoint {
				n.NodeType = warehouse.NodeIntersection
			}
		}
		final[i] = n
	}
	return final
}
