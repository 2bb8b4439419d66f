package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Raamakrishnan/ulog/internal/model"
	"github.com/Raamakrishnan/ulog/internal/stats"
)

// RenderSummary writes s in the layout of a UVM report summary, or as one
// JSON object when format is FormatJSON.
func RenderSummary(w io.Writer, format Format, s stats.Summary) error {
	if format == FormatJSON {
		return json.NewEncoder(w).Encode(s)
	}

	styles := NewStyles(lipgloss.NewRenderer(w))
	header := lipgloss.NewRenderer(w).NewStyle().Bold(true)

	if _, err := fmt.Fprintln(w, header.Render("--- UVM Report Summary ---")); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "** Report counts by severity")
	for _, sev := range model.Severities {
		fmt.Fprintf(w, "%s :%5d\n", styles.Severity(sev), s.SeverityCounts[sev])
	}
	fmt.Fprintln(w, "** Report counts by id")
	for _, c := range s.IDCounts {
		fmt.Fprintf(w, "%s %5d\n", styles.ID.Render("["+c.ID+"]"), c.Count)
	}
	_, err := fmt.Fprintf(w, "** Total lines: %d\n", s.Total)
	return err
}
