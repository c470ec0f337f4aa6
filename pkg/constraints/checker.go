package constraints

import (
	"time"
)

// ValidationResult contains the results of checking a site against constraints
type ValidationResult struct {
	Valid      bool        // True if no violations found
	Violations []Violation // List of all violations
	CheckedAt  time.Time   // When validation was performed
}

// GetViolationsBySeverity returns violations filtered by severity level
func (vr *ValidationResult) GetViolationsBySeverity(severity Severity) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Severity == severity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// GetViolationsByType returns violations filtered by type
func (vr *ValidationResult) GetViolationsByType(violationType ViolationType) []Violation {
	filtered := make([]Violation, 0)
	for _, v := range vr.Violations {
		if v.Type == violationType {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Messages returns the violation messages in check order.
func (vr *ValidationResult) Messages() []string {
	out := make([]string, len(vr.Violations))
	for i, v := range vr.Violations {
		out[i] = v.Message
	}
	return out
}

// Checker manages a set of constraints and checks sites against them
type Checker struct {
	constraints []Constraint
}

// NewChecker creates a new empty checker
func NewChecker() *Checker {
	return &Checker{
		constraints: make([]Constraint, 0),
	}
}

// DefaultChecker checks aisle width, floor load and aisle capacity.
func DefaultChecker() *Checker {
	c := NewChecker()
	c.AddConstraints([]Constraint{
		AisleWidthConstraint{},
		FloorLoadConstraint{},
		AisleCapacityConstraint{},
	})
	return c
}

// AddConstraint adds a constraint to the checker
func (c *Checker) AddConstraint(constraint Constraint) {
	c.constraints = append(c.constraints, constraint)
}

// AddConstraints adds multiple constraints to the checker
func (c *Checker) AddConstraints(constraints []Constraint) {
	c.constraints = append(c.constraints, constraints...)
}

// Check runs all constraints against the site and returns the results
func (c *Checker) Check(site *Site) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:      true,
		Violations: make([]Violation, 0),
		CheckedAt:  time.Now(),
	}

	for _, constraint := range c.constraints {
		violations, err := constraint.Validate(site)
		if err != nil {
			return nil, err
		}

		if len(violations) > 0 {
			result.Valid = false
			result.Violations = append(result.Violations, violations...)
		}
	}

	return result, nil
}

// GetConstraints returns all constraints in the checker
func (c *Checker) GetConstraints() []Constraint {
	return c.constraints
}
