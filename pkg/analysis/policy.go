package analysis

import (
	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
)

// Policy holds the heuristic knobs of the analyzer. The defaults are
// working assumptions about typical warehouse traffic, not measured values.
type Policy struct {
	// AccessibilityNeighbours is k in the k-nearest-node accessibility score.
	AccessibilityNeighbours int `json:"accessibility_neighbours" yaml:"accessibility_neighbours"`
	// ZoneKeyNodes is the number of nodes per zone treated as traffic endpoints.
	ZoneKeyNodes int `json:"zone_key_nodes" yaml:"zone_key_nodes"`

	// Nominal trips per hour by route category.
	ShippingReceivingVolume float64 `json:"shipping_receiving_volume" yaml:"shipping_receiving_volume"`
	ShippingZoneVolume      float64 `json:"shipping_zone_volume" yaml:"shipping_zone_volume"`
	ReceivingZoneVolume     float64 `json:"receiving_zone_volume" yaml:"receiving_zone_volume"`
	// VolumeOverrides replaces the nominal volume for a route keyed "from->to".
	VolumeOverrides map[string]float64 `json:"volume_overrides,omitempty" yaml:"volume_overrides,omitempty"`

	// BottleneckThreshold is the score a route must exceed to be critical.
	BottleneckThreshold float64 `json:"bottleneck_threshold" yaml:"bottleneck_threshold"`

	// Reference points for zone accessibility.
	ShippingPoint  geometry.Point `json:"shipping_point" yaml:"shipping_point"`
	ReceivingPoint geometry.Point `json:"receiving_point" yaml:"receiving_point"`

	// Zone improvement triggers.
	MinAccessibility      float64 `json:"min_accessibility" yaml:"min_accessibility"`
	MaxShippingDistance   float64 `json:"max_shipping_distance" yaml:"max_shipping_distance"`
	MaxTrafficDensity     float64 `json:"max_traffic_density" yaml:"max_traffic_density"`
	ChargingStationSpread float64 `json:"charging_station_spread" yaml:"charging_station_spread"`
}

// DefaultPolicy returns the standard analyzer settings.
func DefaultPolicy() Policy {
	return Policy{
		AccessibilityNeighbours: 5,
		ZoneKeyNodes:            2,
		ShippingReceivingVolume: 50,
		ShippingZoneVolume:      30,
		ReceivingZoneVolume:     20,
		BottleneckThreshold:     0.3,
		MinAccessibility:        0.5,
		MaxShippingDistance:     30,
		MaxTrafficDensity:       0.8,
		ChargingStationSpread:   15,
	}
}

// VolumeKey is the VolumeOverrides key for a route.
func VolumeKey(from, to string) string {
	return from + "->" + to
}
