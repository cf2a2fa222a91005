package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders Dataset records into CSV bytes.
//
// Fields are written verbatim, comma-joined, without quoting or escaping.
// The timetable domain controls its own identifiers so embedded commas do
// not occur in practice; consumers re-importing the output should be aware
// of the limitation.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset: the header line first,
// then one row per record in dataset order.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	buf.WriteString(strings.Join(data.Headers, ","))
	buf.WriteByte('\n')
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		buf.WriteString(strings.Join(record, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
