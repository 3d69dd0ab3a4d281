// Package report renders the side-by-side comparison of two clients.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/s3bench/s3compare/model"
)

const (
	minLabelWidth = 25
	minValueWidth = 15

	notAvailable = "N/A"
)

// Column is one side of a comparison.
type Column struct {
	Client  model.ClientDescriptor
	Metrics model.MetricSet
}

type row struct {
	label, left, right string
}

// Render writes the comparison table for two clients to w.
//
// Throughput and duration are shown only when both sides report the aggregate;
// otherwise the section collapses to a single "(metrics not available)" row.
// Peak memory is shown per side, with N/A for a side that did not report it.
func Render(w io.Writer, left, right Column) error {
	header := row{"Metric", left.Client.Label(), right.Client.Label()}

	var rows []row
	rows = append(rows, row{label: "Throughput (Gb/s)"})
	rows = append(rows, aggregateRows(left.Metrics.Throughput, right.Metrics.Throughput)...)
	rows = append(rows, row{label: "Duration (Secs)"})
	rows = append(rows, aggregateRows(left.Metrics.Duration, right.Metrics.Duration)...)
	rows = append(rows, row{"Peak RSS (MiB)", formatOptional(left.Metrics.PeakRSSMiB), formatOptional(right.Metrics.PeakRSSMiB)})

	labelWidth, valueWidth := columnWidths(header, rows)

	var b strings.Builder
	fmt.Fprintf(&b, "\nComparing: %s vs %s\n\n", header.left, header.right)
	b.WriteString(border("┌", "┬", "┐", labelWidth, valueWidth))
	b.WriteString(formatRow(header, labelWidth, valueWidth))
	b.WriteString(border("├", "┼", "┤", labelWidth, valueWidth))
	for _, r := range rows {
		b.WriteString(formatRow(r, labelWidth, valueWidth))
	}
	b.WriteString(border("└", "┴", "┘", labelWidth, valueWidth))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func aggregateRows(left, right *model.Aggregate) []row {
	if left == nil || right == nil {
		return []row{{label: "  (metrics not available)"}}
	}
	return []row{
		{"  Median", formatValue(left.Median), formatValue(right.Median)},
		{"  Mean", formatValue(left.Mean), formatValue(right.Mean)},
		{"  Min", formatValue(left.Min), formatValue(right.Min)},
		{"  Max", formatValue(left.Max), formatValue(right.Max)},
	}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatOptional(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return formatValue(*v)
}

// columnWidths returns cell widths including one space of padding on each side.
func columnWidths(header row, rows []row) (labelWidth, valueWidth int) {
	labelWidth, valueWidth = minLabelWidth, minValueWidth
	for _, r := range append([]row{header}, rows...) {
		labelWidth = max(labelWidth, utf8.RuneCountInString(r.label)+2)
		valueWidth = max(valueWidth, utf8.RuneCountInString(r.left)+2, utf8.RuneCountInString(r.right)+2)
	}
	return labelWidth, valueWidth
}

func border(left, mid, right string, labelWidth, valueWidth int) string {
	return left + strings.Repeat("─", labelWidth) +
		mid + strings.Repeat("─", valueWidth) +
		mid + strings.Repeat("─", valueWidth) +
		right + "\n"
}

func formatRow(r row, labelWidth, valueWidth int) string {
	return fmt.Sprintf("│ %-*s │ %-*s │ %-*s │\n",
		labelWidth-2, r.label,
		valueWidth-2, r.left,
		valueWidth-2, r.right,
	)
}
