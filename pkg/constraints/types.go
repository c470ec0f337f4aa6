package constraints

import (
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// AGV is the physical envelope of one vehicle.
type AGV struct {
	Width        float64 // meters
	Length       float64 // meters
	Mass         float64 // kg, unladen
	Payload      float64 // kg, rated
	SafetyBuffer float64 // meters each side
	Acceleration float64 // m/s^2
}

// Site is a warehouse together with the fleet planned for it.
type Site struct {
	Warehouse *warehouse.LegacyWarehouse
	AGV       AGV
	FleetSize int
	// MaxPerAisle is the configured occupancy limit per aisle.
	MaxPerAisle int
	// FloorCapacity is the rated distributed load in kg/m^2.
	FloorCapacity     float64
	FollowingDistance float64
	Bidirectional     bool
}

// Severity indicates the importance of a violation
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationType categorizes the type of constraint violation
type ViolationType int

const (
	AisleTooNarrow ViolationType = iota
	FloorOverload
	AisleOverCapacity
	FleetOverCapacity
)

func (vt ViolationType) String() string {
	switch vt {
	case AisleTooNarrow:
		return "AisleTooNarrow"
	case FloorOverload:
		return "FloorOverload"
	case AisleOverCapacity:
		return "AisleOverCapacity"
	case FleetOverCapacity:
		return "FleetOverCapacity"
	default:
		return "Unknown"
	}
}

// Violation represents a constraint violation
type Violation struct {
	Type       ViolationType
	Severity   Severity
	Subject    string // zone id, or "fleet"
	Constraint string
	Message    string
	Details    map[string]any
}

// Constraint is one physical rule a site must satisfy.
type Constraint interface {
	// Validate checks the constraint against the site
	// Returns a list of violations (empty if valid)
	Validate(site *Site) ([]Violation, error)

	// Name returns a human-readable name for the constraint
	Name() string
}
