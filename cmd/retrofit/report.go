package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/feasibility"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	scoreBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

var gradeColors = map[feasibility.Grade]lipgloss.Color{
	feasibility.GradeA: "#00FF00",
	feasibility.GradeB: "#7FFF00",
	feasibility.GradeC: "#FFFF00",
	feasibility.GradeD: "#FFAA00",
	feasibility.GradeF: "#FF0000",
}

func renderReport(out *converter.RoboticWarehouse) string {
	a := out.Assessment
	var b strings.Builder

	b.WriteString(titleStyle.Render(out.Name))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("run " + out.RunID))
	b.WriteString("\n\n")

	grade := lipgloss.NewStyle().Bold(true).Foreground(gradeColors[a.Grade]).
		Render(fmt.Sprintf("%s (%s)", a.Grade, a.Label))
	score := fmt.Sprintf("Feasibility %.1f/10  Grade %s\n%s", a.Score, grade, a.Verdict)
	stats := fmt.Sprintf("Nodes %d\nEdges %d\nCharging stations %d\nTraffic rules %d",
		out.Summary.TotalNodes, out.Summary.TotalEdges, out.Summary.ChargingStations, len(out.TrafficRules))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		scoreBoxStyle.Render(score), " ", scoreBoxStyle.Render(stats)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Factors"))
	b.WriteString("\n")
	for _, f := range a.Factors {
		fmt.Fprintf(&b, "  %-20s %4.1f/%.1f  %-10s %s\n", f.Name, f.Score, f.MaxScore, f.Status, mutedStyle.Render(f.Detail))
	}

	section(&b, "Issues", a.Issues, lipgloss.NewStyle())
	section(&b, "Actions", a.Actions, lipgloss.NewStyle())
	section(&b, "Recommendations", out.Summary.Recommendations, lipgloss.NewStyle())
	section(&b, "Warnings", out.Warnings, warnStyle)
	section(&b, "Conversion notes", out.Notes, mutedStyle)
	return b.String()
}

func section(b *strings.Builder, title string, lines []string, style lipgloss.Style) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString("  - ")
		b.WriteString(style.Render(l))
		b.WriteString("\n")
	}
}
