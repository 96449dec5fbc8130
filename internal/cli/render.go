package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/user/ajar/internal/model"
)

// maxColumnWidth caps table cells for readability.
const maxColumnWidth = 40

var renderer = lipgloss.NewRenderer(os.Stdout)

var (
	styleOK      = renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	styleWarn    = renderer.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	styleBad     = renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleInfo    = renderer.NewStyle().Foreground(lipgloss.Color("4"))
	styleHeading = renderer.NewStyle().Bold(true)
)

// badge colors a stock or delivery order status.
func badge(status string) string {
	switch status {
	case model.StatusAvailable, model.OrderCompleted:
		return styleOK.Render(status)
	case model.StatusLow, model.OrderInTransit, model.OrderShipped:
		return styleWarn.Render(status)
	case model.StatusEmpty:
		return styleBad.Render(status)
	default:
		return styleInfo.Render(status)
	}
}

// rupiah formats an amount with Indonesian digit grouping, e.g. "Rp 65.000".
func rupiah(amount float64) string {
	p := message.NewPrinter(language.Indonesian)
	return p.Sprintf("Rp %d", int64(math.Round(amount)))
}

// printJSON writes v as indented JSON.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}

// table is a column-aligned text table. Cells in the badge column are
// colored after padding so escape codes don't skew alignment.
type table struct {
	headers  []string
	rows     [][]string
	badgeCol int
}

func newTable(headers ...string) *table {
	return &table{headers: headers, badgeCol: -1}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if cw := lipgloss.Width(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}

	headerParts := make([]string, len(t.headers))
	separatorParts := make([]string, len(t.headers))
	for i, h := range t.headers {
		headerParts[i] = pad(h, widths[i])
		separatorParts[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(styleHeading.Render(strings.Join(headerParts, "  ")), " "))
	fmt.Fprintln(w, strings.Join(separatorParts, "  "))

	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, cell := range row {
			cell = truncate(cell, widths[i])
			padded := pad(cell, widths[i])
			if i == t.badgeCol {
				padded = badge(cell) + padded[len(cell):]
			}
			parts[i] = padded
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// printField writes one "Label: value" line of a detail view.
func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-12s %s\n", label+":", value)
}
