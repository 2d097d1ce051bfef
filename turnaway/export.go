package turnaway

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	// JSONExportName and TextExportName are the suggested file names for
	// the two export formats.
	JSONExportName = "shiftsmart-turnaways.json"
	TextExportName = "shiftsmart-turnaways.txt"

	reportTitle = "ShiftSmart Turnaway Report"
	dateLayout  = "Jan 2, 2006 3:04 PM"
)

// ExportJSON writes all records, newest first, as an indented JSON array.
func (t *Tracker) ExportJSON(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t.List(ctx)); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

// ExportText writes a numbered plain-text report with totals.
func (t *Tracker) ExportText(ctx context.Context, w io.Writer) error {
	if err := WriteReport(w, t.List(ctx)); err != nil {
		return fmt.Errorf("export text: %w", err)
	}
	return nil
}

// WriteReport renders records as the plain-text report.
func WriteReport(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(bw, "%s\n%s\n\n", reportTitle, rule)

	if len(records) == 0 {
		fmt.Fprintln(bw, "No turnaways recorded.")
		return bw.Flush()
	}

	for i, r := range records {
		fmt.Fprintf(bw, "%d. %s\n", i+1, r.Date.Format(dateLayout))
		fmt.Fprintf(bw, "   Location: %s\n", r.Location)
		fmt.Fprintf(bw, "   Reason: %s\n", r.Reason)
		fmt.Fprintf(bw, "   Compensation: %s\n", r.Compensation)
		if r.Notes != "" {
			fmt.Fprintf(bw, "   Notes: %s\n", r.Notes)
		}
		fmt.Fprintln(bw)
	}

	compensated := 0
	for _, r := range records {
		if r.Compensation.Compensated() {
			compensated++
		}
	}

	fmt.Fprintf(bw, "\n%s\n", rule)
	fmt.Fprintf(bw, "Total Turnaways: %d\n", len(records))
	fmt.Fprintf(bw, "Compensated: %d\n", compensated)

	return bw.Flush()
}
