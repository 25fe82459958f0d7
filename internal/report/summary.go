// Package report renders the end-of-run summary shown on the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lepinkainen/botd/internal/pipeline"
)

// Summary describes what a run produced.
type Summary struct {
	Records    int
	JSONPath   string
	CSVPath    string
	TVMazePath string
	// JSONKept, CSVKept and TVMazeKept mark outputs left untouched because
	// the file already existed.
	JSONKept   bool
	CSVKept    bool
	TVMazeKept bool
	ShowName   string
	Episodes   int
	// Counts is nil when matching was skipped.
	Counts *pipeline.MatchCounts
	// Review lists records shown in a table below the summary box.
	Review []pipeline.EnrichedRecord
}

var (
	asciiBorder = lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	boxStyle = lipgloss.NewStyle().
			Border(asciiBorder).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Width(9)

	exactStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fuzzyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("161"))
)

// Render formats s as a bordered block.
func Render(s Summary) string {
	lines := []string{
		headerStyle.Render("Burger of the Day"),
		recordsLine(s.Records, s.JSONPath, s.JSONKept),
		recordsLine(s.Records, s.CSVPath, s.CSVKept),
	}
	if s.TVMazePath != "" {
		if s.TVMazeKept {
			lines = append(lines, fmt.Sprintf("Kept existing TVMaze data at %s", s.TVMazePath))
		} else {
			lines = append(lines, fmt.Sprintf("Wrote TVMaze data to %s", s.TVMazePath))
		}
	}

	if s.Counts != nil {
		show := s.ShowName
		if show == "" {
			show = "TVMaze"
		}
		lines = append(lines,
			"",
			headerStyle.Render(fmt.Sprintf("Matches against %s (%d episodes)", show, s.Episodes)),
			row("exact", exactStyle, s.Counts.Exact, s.Records),
			row("fuzzy", fuzzyStyle, s.Counts.Fuzzy, s.Records),
			row("missing", missingStyle, s.Counts.Missing, s.Records),
		)
	}

	out := boxStyle.Render(strings.Join(lines, "\n"))
	if t := ReviewTable(s.Review); t != "" {
		out += "\n" + t
	}
	return out
}

func recordsLine(n int, path string, kept bool) string {
	if kept {
		return fmt.Sprintf("Kept existing %s (%d records not written)", path, n)
	}
	return fmt.Sprintf("Wrote %d records to %s", n, path)
}

func row(label string, style lipgloss.Style, n, total int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(n) * 100 / float64(total)
	}
	return labelStyle.Render(label) + style.Render(fmt.Sprintf("%4d  %5.1f%%", n, pct))
}

// Print writes the rendered summary followed by a newline.
func Print(w io.Writer, s Summary) error {
	_, err := fmt.Fprintln(w, Render(s))
	return err
}
