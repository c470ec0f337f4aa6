// Package config holds the fleet and simulation parameters used to check a
// retrofit plan. Files are YAML; unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-retrofit/pkg/constraints"
	"github.com/dd0wney/cluso-retrofit/pkg/geometry"
	"github.com/dd0wney/cluso-retrofit/pkg/validation"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// MaxSafeCruiseSpeed is the speed above which Validate warns, in m/s.
const MaxSafeCruiseSpeed = 3.0

// AGVParams describes the fleet vehicles.
type AGVParams struct {
	Count           int     `yaml:"count" json:"count"`
	CruiseSpeed     float64 `yaml:"cruise_speed" json:"cruise_speed"`         // m/s
	Acceleration    float64 `yaml:"acceleration" json:"acceleration"`         // m/s^2
	Deceleration    float64 `yaml:"deceleration" json:"deceleration"`         // m/s^2
	TurnSpeed       float64 `yaml:"turn_speed" json:"turn_speed"`             // m/s
	TurnDelay       float64 `yaml:"turn_delay" json:"turn_delay"`             // s
	Length          float64 `yaml:"length" json:"length"`                     // m
	Width           float64 `yaml:"width" json:"width"`                       // m
	Mass            float64 `yaml:"mass" json:"mass"`                         // kg
	PayloadCapacity float64 `yaml:"payload_capacity" json:"payload_capacity"` // kg
	SafetyBuffer    float64 `yaml:"safety_buffer" json:"safety_buffer"`       // m
}

// BatteryParams are percentages and percent-per-minute rates.
type BatteryParams struct {
	Capacity         float64 `yaml:"capacity" json:"capacity"`
	LowThreshold     float64 `yaml:"low_threshold" json:"low_threshold"`
	HighThreshold    float64 `yaml:"high_threshold" json:"high_threshold"`
	IdleRate         float64 `yaml:"idle_rate" json:"idle_rate"`
	MovingRate       float64 `yaml:"moving_rate" json:"moving_rate"`
	LoadedRate       float64 `yaml:"loaded_rate" json:"loaded_rate"`
	ChargingRate     float64 `yaml:"charging_rate" json:"charging_rate"`
	ChargingStations int     `yaml:"charging_stations" json:"charging_stations"`
}

type TaskParams struct {
	ArrivalRate    float64 `yaml:"arrival_rate" json:"arrival_rate"` // tasks/min
	PickTime       float64 `yaml:"pick_time" json:"pick_time"`       // s
	DropTime       float64 `yaml:"drop_time" json:"drop_time"`       // s
	PriorityLevels int     `yaml:"priority_levels" json:"priority_levels"`
	Timeout        float64 `yaml:"timeout" json:"timeout"`               // s
	ShiftDuration  float64 `yaml:"shift_duration" json:"shift_duration"` // h
	PeakHourFactor float64 `yaml:"peak_hour_factor" json:"peak_hour_factor"`
}

type LayoutParams struct {
	AisleWidth      float64 `yaml:"aisle_width" json:"aisle_width"`
	AisleLength     float64 `yaml:"aisle_length" json:"aisle_length"`
	CrossAisleWidth float64 `yaml:"cross_aisle_width" json:"cross_aisle_width"`
	GridResolution  float64 `yaml:"grid_resolution" json:"grid_resolution"`
}

type TrafficParams struct {
	MaxAGVsPerAisle      int     `yaml:"max_agvs_per_aisle" json:"max_agvs_per_aisle"`
	IntersectionCapacity int     `yaml:"intersection_capacity" json:"intersection_capacity"`
	CongestionWeight     float64 `yaml:"congestion_weight" json:"congestion_weight"`
	FollowingDistance    float64 `yaml:"following_distance" json:"following_distance"` // m
	Bidirectional        bool    `yaml:"bidirectional" json:"bidirectional"`
}

type SimulationParams struct {
	TimeStep          float64 `yaml:"time_step" json:"time_step"` // s
	ReportingInterval float64 `yaml:"reporting_interval" json:"reporting_interval"`
	WarmupPeriod      float64 `yaml:"warmup_period" json:"warmup_period"`
	Duration          float64 `yaml:"duration" json:"duration"`
	RandomSeed        int64   `yaml:"random_seed" json:"random_seed"`
}

type LegacyParams struct {
	FloorLoadCapacity float64 `yaml:"floor_load_capacity" json:"floor_load_capacity"` // kg/m^2
	DoorWidth         float64 `yaml:"door_width" json:"door_width"`
	CeilingHeight     float64 `yaml:"ceiling_height" json:"ceiling_height"`
	ColumnSpacing     float64 `yaml:"column_spacing" json:"column_spacing"`
}

// SimulationConfig is the complete parameter set.
type SimulationConfig struct {
	AGV        AGVParams        `yaml:"agv" json:"agv"`
	Battery    BatteryParams    `yaml:"battery" json:"battery"`
	Task       TaskParams       `yaml:"task" json:"task"`
	Layout     LayoutParams     `yaml:"layout" json:"layout"`
	Traffic    TrafficParams    `yaml:"traffic" json:"traffic"`
	Simulation SimulationParams `yaml:"simulation" json:"simulation"`
	Legacy     LegacyParams     `yaml:"legacy" json:"legacy"`
}

// Default returns the standard parameters.
func Default() SimulationConfig {
	return SimulationConfig{
		AGV: AGVParams{
			Count:           10,
			CruiseSpeed:     1.5,
			Acceleration:    0.5,
			Deceleration:    0.5,
			TurnSpeed:       0.3,
			TurnDelay:       2.0,
			Length:          1.5,
			Width:           1.0,
			Mass:            300,
			PayloadCapacity: 500,
			SafetyBuffer:    0.5,
		},
		Battery: BatteryParams{
			Capacity:         100,
			LowThreshold:     20,
			HighThreshold:    95,
			IdleRate:         0.5,
			MovingRate:       2.0,
			LoadedRate:       3.5,
			ChargingRate:     10,
			ChargingStations: 3,
		},
		Task: TaskParams{
			ArrivalRate:    0.5,
			PickTime:       15,
			DropTime:       10,
			PriorityLevels: 3,
			Timeout:        300,
			ShiftDuration:  8,
			PeakHourFactor: 1.5,
		},
		Layout: LayoutParams{
			AisleWidth:      3.0,
			AisleLength:     50,
			CrossAisleWidth: 3.0,
			GridResolution:  1.0,
		},
		Traffic: TrafficParams{
			MaxAGVsPerAisle:      3,
			IntersectionCapacity: 1,
			CongestionWeight:     1.0,
			FollowingDistance:    1.0,
		},
		Simulation: SimulationParams{
			TimeStep:          0.1,
			ReportingInterval: 60,
			WarmupPeriod:      300,
			Duration:          28800,
			RandomSeed:        42,
		},
		Legacy: LegacyParams{
			FloorLoadCapacity: 5000,
			DoorWidth:         3.0,
			CeilingHeight:     8,
			ColumnSpacing:     10,
		},
	}
}

// Decode reads YAML over the defaults, so omitted keys keep their default
// values. Unknown keys are an error. An empty document yields the defaults.
func Decode(r io.Reader) (SimulationConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return SimulationConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Check(); err != nil {
		return SimulationConfig{}, err
	}
	return cfg, nil
}

// Load reads and checks a YAML config file.
func Load(path string) (SimulationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return SimulationConfig{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Check rejects values that make the model meaningless.
func (c SimulationConfig) Check() error {
	return validation.NewFieldChecker("simulation config").
		Count("agv.count", c.AGV.Count).
		Positive("agv.cruise_speed", c.AGV.CruiseSpeed).
		Positive("agv.acceleration", c.AGV.Acceleration).
		NonNegative("agv.turn_delay", c.AGV.TurnDelay).
		Positive("agv.length", c.AGV.Length).
		Positive("agv.width", c.AGV.Width).
		NonNegative("agv.mass", c.AGV.Mass).
		NonNegative("agv.payload_capacity", c.AGV.PayloadCapacity).
		NonNegative("agv.safety_buffer", c.AGV.SafetyBuffer).
		Percent("battery.low_threshold", c.Battery.LowThreshold).
		Percent("battery.high_threshold", c.Battery.HighThreshold).
		NonNegative("battery.idle_rate", c.Battery.IdleRate).
		NonNegative("battery.moving_rate", c.Battery.MovingRate).
		NonNegative("battery.loaded_rate", c.Battery.LoadedRate).
		NonNegative("battery.charging_rate", c.Battery.ChargingRate).
		Count("traffic.max_agvs_per_aisle", c.Traffic.MaxAGVsPerAisle).
		NonNegative("traffic.following_distance", c.Traffic.FollowingDistance).
		Positive("layout.aisle_width", c.Layout.AisleWidth).
		Positive("legacy.floor_load_capacity", c.Legacy.FloorLoadCapacity).
		Err()
}

// Validate returns warnings for parameters that are legal but unsafe or
// inconsistent.
func (c SimulationConfig) Validate() []string {
	var warnings []string
	if c.AGV.CruiseSpeed > MaxSafeCruiseSpeed {
		warnings = append(warnings, "AGV cruise speed exceeds safe limit (3.0 m/s)")
	}
	if c.AGV.Width >= c.Layout.AisleWidth-2*c.AGV.SafetyBuffer {
		warnings = append(warnings, "AGV width too large for aisle with safety buffer")
	}
	if c.Battery.LowThreshold >= c.Battery.HighThreshold {
		warnings = append(warnings, "Battery low threshold must be < high threshold")
	}
	if c.Traffic.MaxAGVsPerAisle > c.AGV.Count {
		warnings = append(warnings, "Max AGVs per aisle exceeds fleet size")
	}
	return warnings
}

// ForWarehouse copies the warehouse's aisle dimensions into the layout group.
func (c SimulationConfig) ForWarehouse(w *warehouse.LegacyWarehouse) SimulationConfig {
	c.Layout.AisleWidth = w.AisleWidth
	c.Layout.AisleLength = w.AisleLength
	return c
}

// Site pairs the fleet with a warehouse for the physical constraint checks.
func (c SimulationConfig) Site(w *warehouse.LegacyWarehouse) *constraints.Site {
	return &constraints.Site{
		Warehouse: w,
		AGV: constraints.AGV{
			Width:        c.AGV.Width,
			Length:       c.AGV.Length,
			Mass:         c.AGV.Mass,
			Payload:      c.AGV.PayloadCapacity,
			SafetyBuffer: c.AGV.SafetyBuffer,
			Acceleration: c.AGV.Acceleration,
		},
		FleetSize:         c.AGV.Count,
		MaxPerAisle:       c.Traffic.MaxAGVsPerAisle,
		FloorCapacity:     c.Legacy.FloorLoadCapacity,
		FollowingDistance: c.Traffic.FollowingDistance,
		Bidirectional:     c.Traffic.Bidirectional,
	}
}

// BatteryModel returns the battery parameters as a constraints model.
func (c SimulationConfig) BatteryModel() constraints.Battery {
	return constraints.Battery{
		Low:        c.Battery.LowThreshold,
		High:       c.Battery.HighThreshold,
		IdleRate:   c.Battery.IdleRate,
		MovingRate: c.Battery.MovingRate,
		LoadedRate: c.Battery.LoadedRate,
		ChargeRate: c.Battery.ChargingRate,
	}
}

// TravelModel returns the AGV kinematics for travel-time estimates.
func (c SimulationConfig) TravelModel() geometry.TravelTimeModel {
	return geometry.TravelTimeModel{
		CruiseSpeed:  c.AGV.CruiseSpeed,
		Acceleration: c.AGV.Acceleration,
		TurnDelay:    c.AGV.TurnDelay,
	}
}
