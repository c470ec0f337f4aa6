package warehouse

import (
	"fmt"
)

// ZoneType classifies a floor zone.
type ZoneType int

const (
	zoneTypeInvalid ZoneType = iota
	ZonePickup
	ZoneDrop
	ZoneStorage
	ZoneCharging
	ZoneAisle
	ZoneCrossover
)

// ZoneTypes lists every declared zone type in declaration order.
var ZoneTypes = []ZoneType{ZonePickup, ZoneDrop, ZoneStorage, ZoneCharging, ZoneAisle, ZoneCrossover}

func (z ZoneType) String() string {
	switch z {
	case ZonePickup:
		return "pickup"
	case ZoneDrop:
		return "drop"
	case ZoneStorage:
		return "storage"
	case ZoneCharging:
		return "charging"
	case ZoneAisle:
		return "aisle"
	case ZoneCrossover:
		return "crossover"
	case zoneTypeInvalid:
		return "unknown"
	}
	return "unknown"
}

// Valid reports whether z is a declared zone type.
func (z ZoneType) Valid() bool {
	return z >= ZonePickup && z <= ZoneCrossover
}

// ParseZoneType parses the lowercase name of a zone type.
func ParseZoneType(s string) (ZoneType, error) {
	for _, z := range ZoneTypes {
		if z.String() == s {
			return z, nil
		}
	}
	return zoneTypeInvalid, fmt.Errorf("%w: zone type %q", ErrInvalidEnum, s)
}

func (z ZoneType) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, fmt.Errorf("%w: zone type %d", ErrInvalidEnum, int(z))
	}
	return []byte(z.String()), nil
}

func (z *ZoneType) UnmarshalText(text []byte) error {
	parsed, err := ParseZoneType(string(text))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

// NodeType classifies a navigation node.
type NodeType int

const (
	nodeTypeInvalid NodeType = iota
	NodePickup
	NodeDrop
	NodeIntersection
	NodeAisleEntry
	NodeAisleExit
	NodeCharging
	NodeWaypoint
	NodeStaging
	NodeMaintenance
	NodeZoneEntry
	NodeReceiving
	NodeShipping
)

// NodeTypes lists every declared node type in declaration order.
var NodeTypes = []NodeType{
	NodePickup, NodeDrop, NodeIntersection, NodeAisleEntry, NodeAisleExit, NodeCharging,
	NodeWaypoint, NodeStaging, NodeMaintenance, NodeZoneEntry, NodeReceiving, NodeShipping,
}

func (n NodeType) String() string {
	switch n {
	case NodePickup:
		return "pickup"
	case NodeDrop:
		return "drop"
	case NodeIntersection:
		return "intersection"
	case NodeAisleEntry:
		return "aisle_entry"
	case NodeAisleExit:
		return "aisle_exit"
	case NodeCharging:
		return "charging"
	case NodeWaypoint:
		return "waypoint"
	case NodeStaging:
		return "staging"
	case NodeMaintenance:
		return "maintenance"
	case NodeZoneEntry:
		return "zone_entry"
	case NodeReceiving:
		return "receiving"
	case NodeShipping:
		return "shipping"
	case nodeTypeInvalid:
		return "unknown"
	}
	return "unknown"
}

// Valid reports whether n is a declared node type.
func (n NodeType) Valid() bool {
	return n >= NodePickup && n <= NodeShipping
}

// ParseNodeType parses the lowercase name of a node type.
func ParseNodeType(s string) (NodeType, error) {
	for _, n := range NodeTypes {
		if n.String() == s {
			return n, nil
		}
	}
	return nodeTypeInvalid, fmt.Errorf("%w: node type %q", ErrInvalidEnum, s)
}

func (n NodeType) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: node type %d", ErrInvalidEnum, int(n))
	}
	return []byte(n.String()), nil
}

func (n *NodeType) UnmarshalText(text []byte) error {
	parsed, err := ParseNodeType(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// RuleType classifies a traffic rule.
type RuleType int

const (
	ruleTypeInvalid RuleType = iota
	RuleOneWay
	RulePriority
)

func (r RuleType) String() string {
	switch r {
	case RuleOneWay:
		return "one_way"
	case RulePriority:
		return "priority"
	case ruleTypeInvalid:
		return "unknown"
	}
	return "unknown"
}

// Valid reports whether r is a declared rule type.
func (r RuleType) Valid() bool {
	return r == RuleOneWay || r == RulePriority
}

func (r RuleType) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: rule type %d", ErrInvalidEnum, int(r))
	}
	return []byte(r.String()), nil
}

func (r *RuleType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "one_way":
		*r = RuleOneWay
	case "priority":
		*r = RulePriority
	default:
		return fmt.Errorf("%w: rule type %q", ErrInvalidEnum, string(text))
	}
	return nil
}
