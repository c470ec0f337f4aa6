package feasibility

import (
	"fmt"
	"strconv"
	"strings"
)

// Status rates a single factor.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusAcceptable Status = "acceptable"
	StatusMarginal   Status = "marginal"
	StatusPoor       Status = "poor"
	StatusInadequate Status = "inadequate"
)

// Grade is the letter band of the final score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Label is the one-word name of the grade.
func (g Grade) Label() string {
	switch g {
	case GradeA:
		return "Excellent"
	case GradeB:
		return "Good"
	case GradeC:
		return "Marginal"
	case GradeD:
		return "Poor"
	}
	return "Fail"
}

// Verdict is the one-line recommendation for the grade.
func (g Grade) Verdict() string {
	switch g {
	case GradeA:
		return "Ready for retrofit: minimal changes needed"
	case GradeB:
		return "Feasible with minor adjustments"
	case GradeC:
		return "Feasible but needs significant work before AGV deployment"
	case GradeD:
		return "Major retrofitting required before any AGV operation"
	}
	return "Not feasible: complete warehouse redesign required"
}

// GradeFor maps a 0-10 score to its band.
func GradeFor(score float64) Grade {
	switch {
	case score >= 9.0:
		return GradeA
	case score >= 7.0:
		return GradeB
	case score >= 5.0:
		return GradeC
	case score >= 3.0:
		return GradeD
	}
	return GradeF
}

// Factor names.
const (
	FactorAisleWidth    = "Aisle Width"
	FactorRegularity    = "Layout Regularity"
	FactorUtilization   = "Space Utilization"
	FactorAccessibility = "Accessibility"
)

// Factor is one scored component of the assessment.
type Factor struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Weight   string  `json:"weight"`
	Status   Status  `json:"status"`
	Detail   string  `json:"detail"`
}

// Assessment is the graded result of Score.
type Assessment struct {
	Score       float64  `json:"score"`
	Grade       Grade    `json:"grade"`
	Label       string   `json:"label"`
	Verdict     string   `json:"verdict"`
	IsFeasible  bool     `json:"is_feasible"`
	Utilization float64  `json:"utilization"`
	Factors     []Factor `json:"factors"`
	Issues      []string `json:"issues"`
	Actions     []string `json:"actions"`
}

// Factor returns the named factor.
func (a Assessment) Factor(name string) (Factor, bool) {
	for _, f := range a.Factors {
		if f.Name == name {
			return f, true
		}
	}
	return Factor{}, false
}

// Notes renders one summary line per factor followed by the final score.
func (a Assessment) Notes() []string {
	notes := make([]string, 0, len(a.Factors)+1)
	for _, f := range a.Factors {
		line := fmt.Sprintf("%s score: %.1f/%.1f", noteName(f.Name), f.Score, f.MaxScore)
		if f.Name == FactorUtilization {
			line += fmt.Sprintf(" (utilization: %s)", percent(a.Utilization))
		}
		notes = append(notes, line)
	}
	return append(notes, fmt.Sprintf("Final feasibility score: %.1f/10.0", a.Score))
}

func noteName(factor string) string {
	name := strings.ToLower(factor)
	return strings.ToUpper(name[:1]) + name[1:]
}

// Meters formats a length the way reports print it: shortest form, with a
// trailing ".0" for whole numbers.
func Meters(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
