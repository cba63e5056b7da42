package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/repovet/repovet/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(64)

	levelColors = map[domain.RiskLevel]lipgloss.Color{
		domain.RiskLow:        success,
		domain.RiskMediumLow:  lipgloss.Color("#A3E635"), // lime
		domain.RiskMediumHigh: warning,
		domain.RiskHigh:       lipgloss.Color("#FB923C"), // orange
		domain.RiskCritical:   danger,
	}

	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	faintStyle   = lipgloss.NewStyle().Foreground(faint)
	passStyle    = lipgloss.NewStyle().Foreground(success)
	penaltyStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)

	separatorLine = faintStyle.Render(strings.Repeat("─", 60))
)

// RenderReport formats a full scan report for the terminal: the score box,
// the red flags in rule order, and the metadata block.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	level := report.Level
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(levelColor(level)).
		Render(fmt.Sprintf("%d / 100", report.Score))
	levelStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(levelColor(level)).
		Render(string(level))

	title := headerStyle.Render("repovet")
	subtitle := dimStyle.Render(report.RepoName)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + levelStyled))
	b.WriteString("\n\n")

	if len(report.Findings) > 0 {
		b.WriteString("  " + titleStyle.Render("Red flags") + "\n\n")
		for _, finding := range report.Findings {
			tag := penaltyStyle.Render(fmt.Sprintf("-%-3d", finding.Penalty))
			fmt.Fprintf(&b, "    %s %s\n", tag, dimStyle.Render(finding.Message))
		}
	} else {
		b.WriteString("  " + passStyle.Render("No red flags detected.") + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")
	renderMetadata(&b, &report.Bundle)
	b.WriteString("\n")

	return b.String()
}

func renderMetadata(b *strings.Builder, bundle *domain.SignalBundle) {
	b.WriteString("  " + titleStyle.Render("Metadata") + "\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Stars", fmt.Sprintf("%d", bundle.Stars)},
		{"Forks", fmt.Sprintf("%d", bundle.Forks)},
		{"Commits", fmt.Sprintf("%d", bundle.CommitCount)},
		{"Contributors", fmt.Sprintf("%d", bundle.ContributorCount)},
		{"Code volume", fmt.Sprintf("%d", bundle.LinesOfCode)},
		{"Language", orUnknown(bundle.Language)},
		{"License", orUnknown(bundle.License)},
		{"Created", formatDate(bundle)},
	}
	for _, row := range rows {
		fmt.Fprintf(b, "    %s %s\n", dimStyle.Render(padRight(row.label, 14)), row.value)
	}
}

func formatDate(bundle *domain.SignalBundle) string {
	if bundle.CreatedAt.IsZero() {
		return "unknown"
	}
	return bundle.CreatedAt.Format("2006-01-02")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// RenderHistory formats past scan results for terminal output.
func RenderHistory(entries []domain.ReportEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No scan history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Scan history") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}
		scoreStyled := lipgloss.NewStyle().
			Foreground(levelColor(e.Level)).
			Render(fmt.Sprintf("%3d/100", e.Score))

		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			dimStyle.Render(date),
			scoreStyled,
			padRight(string(e.Level), 11),
			faintStyle.Render(e.Repo),
		)
	}

	return b.String()
}

func levelColor(level domain.RiskLevel) lipgloss.Color {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return fg
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
