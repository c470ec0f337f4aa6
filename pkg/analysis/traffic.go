package analysis

import (
	"fmt"

	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

// GenerateTrafficRules alternates one-way direction across aisles by index
// and gives the first pickup and drop zones priority access.
func GenerateTrafficRules(w *warehouse.LegacyWarehouse) []warehouse.TrafficRule {
	var rules []warehouse.TrafficRule

	for i, aisle := range w.ZonesOfType(warehouse.ZoneAisle) {
		direction := "north"
		if i%2 != 0 {
			direction = "south"
		}
		rules = append(rules, warehouse.TrafficRule{
			ID:          fmt.Sprintf("one_way_aisle_%d", i+1),
			Type:        warehouse.RuleOneWay,
			AppliesTo:   []string{aisle.ID},
			Direction:   direction,
			Description: fmt.Sprintf("Aisle %d: %sbound traffic only", i+1, direction),
		})
	}

	if pickups := w.ZonesOfType(warehouse.ZonePickup); len(pickups) > 0 {
		rules = append(rules, warehouse.TrafficRule{
			ID:          "priority_pickup",
			Type:        warehouse.RulePriority,
			AppliesTo:   []string{pickups[0].ID},
			Description: "Priority access for pickup operations",
		})
	}
	if drops := w.ZonesOfType(warehouse.ZoneDrop); len(drops) > 0 {
		rules = append(rules, warehouse.TrafficRule{
			ID:          "priority_drop",
			Type:        warehouse.RulePriority,
			AppliesTo:   []string{drops[0].ID},
			Description: "Priority access for drop operations",
		})
	}
	return rules
}
