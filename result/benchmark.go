package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BenchmarkSet is the per-algorithm record set returned by a benchmark
// request. Records are kept opaque; only elapsed and cost are read for the
// summary table.
type BenchmarkSet struct {
	Results map[string]json.RawMessage `json:"results"`

	// Machine describes the client host the benchmark was started from.
	Machine string `json:"-"`
}

// DecodeBenchmark parses a benchmark response body.
func DecodeBenchmark(body []byte) (*BenchmarkSet, error) {
	var b BenchmarkSet
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("result: decode benchmark: %w", err)
	}
	if b.Results == nil {
		b.Results = map[string]json.RawMessage{}
	}
	return &b, nil
}

// Algorithms returns the benchmarked algorithm names in sorted order.
func (b *BenchmarkSet) Algorithms() []string {
	names := make([]string, 0, len(b.Results))
	for name := range b.Results {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BenchmarkRow summarizes one benchmark record.
type BenchmarkRow struct {
	Algorithm string
	Elapsed   *float64
	Cost      *float64
	Error     string
}

// Rows summarizes every record in algorithm order.
func (b *BenchmarkSet) Rows() []BenchmarkRow {
	rows := make([]BenchmarkRow, 0, len(b.Results))
	for _, name := range b.Algorithms() {
		var rec struct {
			Elapsed *float64 `json:"elapsed"`
			Cost    *float64 `json:"cost"`
			Error   string   `json:"error"`
		}
		// Records are opaque; a record that is not an object just yields an
		// empty row.
		_ = json.Unmarshal(b.Results[name], &rec)
		rows = append(rows, BenchmarkRow{
			Algorithm: name,
			Elapsed:   rec.Elapsed,
			Cost:      rec.Cost,
			Error:     rec.Error,
		})
	}
	return rows
}

// WriteText writes a summary table followed by every record as indented
// JSON. Numbers are formatted for tag (language.English when undetermined).
func (b *BenchmarkSet) WriteText(w io.Writer, tag language.Tag) error {
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	if b.Machine != "" {
		if _, err := fmt.Fprintf(w, "machine: %s\n\n", b.Machine); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tELAPSED (ms)\tCOST\tERROR")
	for _, row := range b.Rows() {
		elapsed, cost := "-", "-"
		if row.Elapsed != nil {
			elapsed = p.Sprintf("%.3f", *row.Elapsed*1000)
		}
		if row.Cost != nil {
			cost = p.Sprintf("%.2f", *row.Cost)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Algorithm, elapsed, cost, row.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range b.Algorithms() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, b.Results[name], "", "  "); err != nil {
			buf.Reset()
			buf.Write(b.Results[name])
		}
		if _, err := fmt.Fprintf(w, "\n%s:\n%s\n", name, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
