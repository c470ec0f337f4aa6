// Package export renders conversion results as the JSON interchange
// document and reads it back.
package export

import (
	"time"

	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

const (
	FormatVersion = "1.0"
	Exporter      = "cluso-retrofit/export"
)

// Document is the full export of a converted warehouse.
type Document struct {
	Warehouse        WarehouseInfo                 `json:"warehouse"`
	Zones            []warehouse.Zone              `json:"zones"`
	Nodes            []warehouse.Node              `json:"nodes"`
	Edges            []warehouse.Edge              `json:"edges"`
	ChargingStations []warehouse.Node              `json:"charging_stations"`
	NavigationGraph  map[string][]string           `json:"navigation_graph"`
	DistanceMatrix   map[string]map[string]float64 `json:"distance_matrix"`
	TrafficRules     []warehouse.TrafficRule       `json:"traffic_rules"`
	Statistics       Statistics                    `json:"statistics"`
	Feasibility      *Feasibility                  `json:"feasibility,omitempty"`
	Notes            []string                      `json:"conversion_notes,omitempty"`
	Metadata         *Metadata                     `json:"metadata,omitempty"`
}

type WarehouseInfo struct {
	Name         string       `json:"name"`
	Dimensions   Dimensions   `json:"dimensions"`
	LegacyConfig LegacyConfig `json:"legacy_config"`
}

type Dimensions struct {
	WidthM      float64 `json:"width_m"`
	LengthM     float64 `json:"length_m"`
	TotalAreaM2 float64 `json:"total_area_m2"`
}

type LegacyConfig struct {
	Aisles        int     `json:"aisles"`
	AisleWidth    float64 `json:"aisle_width"`
	AisleLength   float64 `json:"aisle_length"`
	StorageAreaM2 float64 `json:"storage_area_m2"`
}

// Statistics counts the exported records.
type Statistics struct {
	TotalNodes       int            `json:"total_nodes"`
	TotalEdges       int            `json:"total_edges"`
	TotalZones       int            `json:"total_zones"`
	ChargingStations int            `json:"charging_stations"`
	NodesByType      map[string]int `json:"nodes_by_type"`
	ZonesByType      map[string]int `json:"zones_by_type"`
}

// Feasibility is the headline of the assessment.
type Feasibility struct {
	Score      float64 `json:"score"`
	Grade      string  `json:"grade"`
	Label      string  `json:"label"`
	IsFeasible bool    `json:"is_feasible"`
}

type Metadata struct {
	RunID      string    `json:"run_id"`
	ExportedAt time.Time `json:"exported_at"`
	Version    string    `json:"version"`
	Exporter   string    `json:"exporter"`
}

// Options controls Build and Write.
type Options struct {
	Metadata bool
	Pretty   bool
	// Compress writes a snappy block instead of plain JSON.
	Compress bool
	// Clock stamps ExportedAt; nil means time.Now.
	Clock func() time.Time
}

// DefaultOptions includes metadata and pretty-prints.
func DefaultOptions() Options {
	return Options{Metadata: true, Pretty: true}
}

// Build assembles the export document. Record order follows the
// conversion result.
func Build(rw *converter.RoboticWarehouse, opts Options) (Document, error) {
	if rw == nil {
		return Document{}, ErrNilConversion
	}
	doc := Document{
		Warehouse: WarehouseInfo{
			Name: rw.Name,
			Dimensions: Dimensions{
				WidthM:      rw.Width,
				LengthM:     rw.Length,
				TotalAreaM2: rw.Width * rw.Length,
			},
			LegacyConfig: LegacyConfig{
				Aisles:        rw.Aisles,
				AisleWidth:    rw.AisleWidth,
				AisleLength:   rw.AisleLength,
				StorageAreaM2: float64(rw.Aisles) * rw.AisleLength * rw.AisleWidth,
			},
		},
		Zones:            nonNil(rw.Zones),
		Nodes:            nonNil(rw.Nodes),
		Edges:            nonNil(rw.Edges),
		ChargingStations: nonNil(rw.ChargingStations),
		NavigationGraph:  rw.NavigationGraph,
		DistanceMatrix:   rw.DistanceMatrix,
		TrafficRules:     nonNil(rw.TrafficRules),
		Statistics:       statistics(rw),
		Feasibility: &Feasibility{
			Score:      rw.Assessment.Score,
			Grade:      string(rw.Assessment.Grade),
			Label:      rw.Assessment.Label,
			IsFeasible: rw.Assessment.IsFeasible,
		},
		Notes: rw.Notes,
	}
	if opts.Metadata {
		now := time.Now
		if opts.Clock != nil {
			now = opts.Clock
		}
		doc.Metadata = &Metadata{
			RunID:      rw.RunID,
			ExportedAt: now().UTC(),
			Version:    FormatVersion,
			Exporter:   Exporter,
		}
	}
	return doc, nil
}

func statistics(rw *converter.RoboticWarehouse) Statistics {
	s := Statistics{
		TotalNodes:       len(rw.Nodes),
		TotalEdges:       len(rw.Edges),
		TotalZones:       len(rw.Zones),
		ChargingStations: len(rw.ChargingStations),
		NodesByType:      make(map[string]int),
		ZonesByType:      make(map[string]int),
	}
	for t, n := range navgraph.CountByType(rw.Nodes) {
		s.NodesByType[t.String()] = n
	}
	for _, z := range rw.Zones {
		s.ZonesByType[z.ZoneType.String()]++
	}
	return s
}

// nonNil keeps empty collections as [] rather than null in the JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
