package navgraph

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

func TestBuildSmallGrid(t *testing.T) {
	g, err := Build(Geometry{Width: 2, Length: 2}, Options{GridSpacing: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(g.Nodes) != 9 {
		t.Fatalf("got %d nodes, want 9", len(g.Nodes))
	}
	// 12 axis-aligned plus 8 diagonal links.
	if len(g.Edges) != 20 {
		t.Fatalf("got %d edges, want 20", len(g.Edges))
	}

	// Row-major scan: x outer, y inner.
	if g.Nodes[1].X != 0 || g.Nodes[1].Y != 1 {
		t.Errorf("grid_1 at (%v, %v), want (0, 1)", g.Nodes[1].X, g.Nodes[1].Y)
	}
	if g.Nodes[3].ID != "grid_3" || g.Nodes[3].X != 1 || g.Nodes[3].Y != 0 {
		t.Errorf("node 3 = %+v, want grid_3 at (1, 0)", g.Nodes[3])
	}

	first := g.Edges[:3]
	want := []struct {
		from, to string
		d        float64
	}{
		{"grid_0", "grid_1", 1},
		{"grid_0", "grid_3", 1},
		{"grid_0", "grid_4", math.Sqrt2},
	}
	for i, w := range want {
		e := first[i]
		if e.ID != fmt.Sprintf("nav_edge_%d", i) || e.From != w.from || e.To != w.to {
			t.Errorf("edge %d = %s %s->%s, want %s->%s", i, e.ID, e.From, e.To, w.from, w.to)
		}
		if math.Abs(e.Distance-w.d) > 1e-12 || !e.Bidirectional {
			t.Errorf("edge %d distance = %v bidirectional = %v", i, e.Distance, e.Bidirectional)
		}
	}

	// Every node of a 3x3 grid with diagonals has at least 3 neighbours.
	for _, n := range g.Nodes {
		if !n.IsIntersection || n.NodeType != warehouse.NodeIntersection {
			t.Errorf("node %s: intersection=%v type=%v", n.ID, n.IsIntersection, n.NodeType)
		}
	}
}

func TestBuildStaysInsideFloor(t *testing.T) {
	g, err := Build(Geometry{Width: 2.5, Length: 1}, Options{GridSpacing: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(g.Nodes) != 6 {
		t.Errorf("got %d nodes, want 6", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if n.X > 2.5 || n.Y > 1 {
			t.Errorf("node %s outside floor at (%v, %v)", n.ID, n.X, n.Y)
		}
	}
}

func TestBuildSkipsObstacles(t *testing.T) {
	geo := Geometry{
		Width:     2,
		Length:    2,
		Obstacles: []geometry.Rect{{X: 0.8, Y: 0.8, Width: 0.4, Height: 0.4}},
	}
	g, err := Build(geo, Options{GridSpacing: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(g.Nodes) != 8 {
		t.Fatalf("got %d nodes, want 8", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if n.X == 1 && n.Y == 1 {
			t.Error("node placed inside obstacle clearance")
		}
	}
}

func TestBuildZoneEntryAndSpecialNodes(t *testing.T) {
	geo := Geometry{
		Width:  2,
		Length: 2,
		Zones: []warehouse.Zone{
			{ID: "z_storage", X: 0, Y: 0, Width: 1, Height: 1, ZoneType: warehouse.ZoneStorage,
				Entry: &geometry.Point{X: 0, Y: 0}},
		},
		Receiving: &geometry.Point{X: 0.5, Y: 0.5},
		Shipping:  &geometry.Point{X: 2, Y: 2},
	}
	g, err := Build(geo, Options{GridSpacing: 1, EntryFactor: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(g.Nodes) != 11 {
		t.Fatalf("got %d nodes, want 11", len(g.Nodes))
	}

	entries := 0
	for _, n := range g.Nodes {
		if n.NodeType == warehouse.NodeZoneEntry {
			entries++
			if n.ZoneID != "z_storage" || n.ZoneType != warehouse.ZoneStorage {
				t.Errorf("entry node %s zone = %q/%v", n.ID, n.ZoneID, n.ZoneType)
			}
		}
	}
	if entries != 3 {
		t.Errorf("got %d zone entry nodes, want 3", entries)
	}

	recv := g.Nodes[9]
	ship := g.Nodes[10]
	if recv.ID != ReceivingNodeID || recv.NodeType != warehouse.NodeReceiving {
		t.Errorf("node 9 = %+v, want receiving", recv)
	}
	if ship.ID != ShippingNodeID || ship.NodeType != warehouse.NodeShipping {
		t.Errorf("node 10 = %+v, want shipping", ship)
	}

	// Shipping sits on grid_8; zero-length pairs are never connected.
	for _, e := range g.Edges {
		if e.From == "grid_8" && e.To == ShippingNodeID {
			t.Error("coincident nodes should not be connected")
		}
	}
	adj := g.Adjacency()
	if got := len(adj[ReceivingNodeID]); got != 4 {
		t.Errorf("receiving has %d neighbours, want 4", got)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		geo  Geometry
		opts Options
		want error
	}{
		{"negative spacing", Geometry{Width: 5, Length: 5}, Options{GridSpacing: -1}, ErrInvalidSpacing},
		{"zero width", Geometry{Width: 0, Length: 5}, Options{}, ErrInvalidGeometry},
		{"infinite length", Geometry{Width: 5, Length: math.Inf(1)}, Options{}, ErrInvalidGeometry},
		{"over limit", Geometry{Width: 100, Length: 100}, Options{MaxNodes: 50}, ErrGridTooLarge},
		{"product overflows int", Geometry{Width: 3.1e9, Length: 3.1e9}, Options{MaxNodes: 5000}, ErrGridTooLarge},
		{"count overflows int", Geometry{Width: 1e300, Length: 1e300}, Options{MaxNodes: 5000}, ErrGridTooLarge},
		{"unbounded hits ceiling", Geometry{Width: 1e300, Length: 5}, Options{}, ErrGridTooLarge},
		{"tiny spacing", Geometry{Width: 5, Length: 5}, Options{GridSpacing: 1e-300}, ErrGridTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.geo, tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGeometryFromWarehouse(t *testing.T) {
	w := &warehouse.LegacyWarehouse{
		Width:  20,
		Length: 30,
		Zones: []warehouse.Zone{
			{ID: "p", X: 0, Y: 0, Width: 4, Height: 4, ZoneType: warehouse.ZonePickup},
			{ID: "s", X: 10, Y: 10, Width: 2, Height: 6, ZoneType: warehouse.ZoneStorage},
			{ID: "d", X: 16, Y: 26, Width: 4, Height: 4, ZoneType: warehouse.ZoneDrop},
		},
	}

	g := GeometryFromWarehouse(w)
	if len(g.Obstacles) != 1 || g.Obstacles[0] != w.Zones[1].Rect() {
		t.Errorf("obstacles = %v, want storage footprint", g.Obstacles)
	}
	if g.Receiving == nil || *g.Receiving != (geometry.Point{X: 2, Y: 2}) {
		t.Errorf("receiving = %v, want pickup centre", g.Receiving)
	}
	if g.Shipping == nil || *g.Shipping != (geometry.Point{X: 18, Y: 28}) {
		t.Errorf("shipping = %v, want drop centre", g.Shipping)
	}
	for _, z := range g.Zones {
		if z.Entry != nil {
			t.Errorf("zone %s got entry %v, want none", z.ID, *z.Entry)
		}
	}
}

func TestBuildZonesWithoutEntryTagNothing(t *testing.T) {
	w := &warehouse.LegacyWarehouse{
		Width:  10,
		Length: 10,
		Zones: []warehouse.Zone{
			{ID: "aisle_1", X: 4, Y: 2, Width: 2, Height: 6, ZoneType: warehouse.ZoneAisle},
		},
	}

	g, err := Build(GeometryFromWarehouse(w), Options{GridSpacing: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	counts := CountByType(g.Nodes)
	if n := counts[warehouse.NodeZoneEntry]; n != 0 {
		t.Errorf("got %d zone entry nodes, want 0", n)
	}
	for _, n := range g.Nodes {
		if n.ZoneID != "" {
			t.Fatalf("node %s tagged with zone %q", n.ID, n.ZoneID)
		}
	}

	entry := geometry.Point{X: 5, Y: 2}
	w.Zones[0].Entry = &entry
	g, err = Build(GeometryFromWarehouse(w), Options{GridSpacing: 1, EntryFactor: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if n := CountByType(g.Nodes)[warehouse.NodeZoneEntry]; n != 5 {
		t.Errorf("got %d zone entry nodes with a declared entry, want 5", n)
	}
}

func TestBuildDeterministic(t *testing.T) {
	geo := Geometry{
		Width:     12,
		Length:    9,
		Obstacles: []geometry.Rect{{X: 3, Y: 3, Width: 2, Height: 4}},
		Zones: []warehouse.Zone{
			{ID: "z", X: 8, Y: 1, Width: 2, Height: 2, ZoneType: warehouse.ZonePickup, Entry: &geometry.Point{X: 9, Y: 1}},
		},
		Receiving: &geometry.Point{X: 0.5, Y: 0.5},
	}
	a, err := Build(geo, Options{GridSpacing: 1.5})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	b, err := Build(geo, Options{GridSpacing: 1.5})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical geometry produced different graphs")
	}
}

// naiveEdges is the quadratic reference scan.
func naiveEdges(nodes []warehouse.Node, maxDist float64) [][2]string {
	var out [][2]string
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			d := geometry.Euclidean(nodes[i].Position(), nodes[j].Position())
			if d > 0 && d <= maxDist {
				out = append(out, [2]string{nodes[i].ID, nodes[j].ID})
			}
		}
	}
	return out
}

func TestBuildMatchesQuadraticScan(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("cell index finds exactly the quadratic neighbour set", prop.ForAll(
		func(width, length, spacing float64) bool {
			geo := Geometry{
				Width:     width,
				Length:    length,
				Obstacles: []geometry.Rect{{X: width / 3, Y: length / 3, Width: width / 4, Height: length / 4}},
				Receiving: &geometry.Point{X: width / 2, Y: 0.3},
			}
			g, err := Build(geo, Options{GridSpacing: spacing})
			if err != nil {
				return false
			}
			want := naiveEdges(g.Nodes, spacing*DefaultConnectionFactor)
			if len(want) != len(g.Edges) {
				return false
			}
			for i, e := range g.Edges {
				if want[i][0] != e.From || want[i][1] != e.To {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1, 15),
		gen.Float64Range(1, 15),
		gen.Float64Range(0.5, 2.5),
	))

	properties.TestingRun(t)
}
