package warehouse

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dd0wney/cluso-retrofit/pkg/validation"
)

func validWarehouse() LegacyWarehouse {
	return LegacyWarehouse{
		Name:        "test",
		Width:       20,
		Length:      60,
		Aisles:      2,
		AisleWidth:  3,
		AisleLength: 50,
		Zones: []Zone{
			{ID: "zone_pickup", Name: "Pickup", X: 0, Y: 0, Width: 5, Height: 5, ZoneType: ZonePickup},
			{ID: "zone_aisle_1", Name: "Aisle 1", X: 8, Y: 5, Width: 3, Height: 50, ZoneType: ZoneAisle},
		},
		Nodes: []Node{
			{ID: "a", X: 2.5, Y: 2.5, ZoneType: ZonePickup, NodeType: NodePickup},
			{ID: "b", X: 9.5, Y: 5, ZoneType: ZoneAisle, NodeType: NodeAisleEntry},
		},
		Edges: []Edge{
			{ID: "e1", From: "a", To: "b", Distance: 7.4, Bidirectional: true},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *LegacyWarehouse)
		want   error
	}{
		{"valid", func(w *LegacyWarehouse) {}, nil},
		{"zero width", func(w *LegacyWarehouse) { w.Width = 0 }, ErrInvalidDimension},
		{"negative length", func(w *LegacyWarehouse) { w.Length = -5 }, ErrInvalidDimension},
		{"zero aisles", func(w *LegacyWarehouse) { w.Aisles = 0 }, ErrInvalidDimension},
		{"duplicate zone", func(w *LegacyWarehouse) { w.Zones[1].ID = "zone_pickup" }, ErrDuplicateZoneID},
		{"zero height zone", func(w *LegacyWarehouse) { w.Zones[0].Height = 0 }, ErrInvalidDimension},
		{"negative zone", func(w *LegacyWarehouse) { w.Zones[0].X = -1 }, ErrNegativeCoordinate},
		{"duplicate node", func(w *LegacyWarehouse) { w.Nodes[1].ID = "a" }, ErrDuplicateNodeID},
		{"negative node", func(w *LegacyWarehouse) { w.Nodes[0].Y = -0.1 }, ErrNegativeCoordinate},
		{"unknown from", func(w *LegacyWarehouse) { w.Edges[0].From = "ghost" }, ErrUnknownEndpoint},
		{"unknown to", func(w *LegacyWarehouse) { w.Edges[0].To = "ghost" }, ErrUnknownEndpoint},
		{"duplicate edge", func(w *LegacyWarehouse) {
			w.Edges = append(w.Edges, Edge{ID: "e1", From: "b", To: "a", Distance: 1})
		}, ErrDuplicateEdgeID},
		{"zero distance", func(w *LegacyWarehouse) { w.Edges[0].Distance = 0 }, ErrNonPositiveDistance},
		{"missing name", func(w *LegacyWarehouse) { w.Name = "" }, validation.ErrInvalid},
		{"unset node type", func(w *LegacyWarehouse) { w.Nodes[0].NodeType = 0 }, validation.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWarehouse()
			tt.mutate(&w)
			_, err := New(w)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEnumText(t *testing.T) {
	for _, z := range ZoneTypes {
		parsed, err := ParseZoneType(z.String())
		if err != nil || parsed != z {
			t.Errorf("ParseZoneType(%q) = %v, %v", z.String(), parsed, err)
		}
	}
	for _, n := range NodeTypes {
		parsed, err := ParseNodeType(n.String())
		if err != nil || parsed != n {
			t.Errorf("ParseNodeType(%q) = %v, %v", n.String(), parsed, err)
		}
	}

	if _, err := ParseZoneType("loading_bay"); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum, got %v", err)
	}
	if _, err := NodeType(0).MarshalText(); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum for zero node type, got %v", err)
	}
}

func TestNodeJSON(t *testing.T) {
	data := []byte(`{"id":"n1","x":1,"y":2,"zone_type":"aisle","node_type":"aisle_entry","is_intersection":false}`)

	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if n.ZoneType != ZoneAisle || n.NodeType != NodeAisleEntry {
		t.Errorf("decoded types = %v/%v", n.ZoneType, n.NodeType)
	}

	bad := []byte(`{"id":"n1","x":1,"y":2,"zone_type":"aisle","node_type":"teleporter"}`)
	if err := json.Unmarshal(bad, &n); !errors.Is(err, ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum, got %v", err)
	}
}

func TestZonesOfType(t *testing.T) {
	w := validWarehouse()
	if got := w.ZonesOfType(ZoneAisle); len(got) != 1 || got[0].ID != "zone_aisle_1" {
		t.Errorf("ZonesOfType(aisle) = %v", got)
	}
	if w.HasZoneType(ZoneDrop) {
		t.Error("HasZoneType(drop) = true, want false")
	}
}
