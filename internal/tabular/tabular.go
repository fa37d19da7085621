// Package tabular parses bulk-import spreadsheets into header-keyed rows.
// CSV is routed by the .csv extension; everything else is treated as an
// Excel workbook.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one imported record keyed by lower-cased, trimmed header name.
type Row map[string]string

// Get returns the named column value, tolerating missing columns.
func (r Row) Get(name string) string {
	return r[name]
}

// Parse reads the upload into rows. The first line/row is the header; cells
// beyond the header width are ignored and missing cells read as empty.
func Parse(filename string, r io.Reader) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return parseCSV(r)
	}
	return parseXLSX(r)
}

func parseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return tableToRows(records), nil
}

func parseXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return tableToRows(records), nil
}

func tableToRows(records [][]string) []Row {
	if len(records) == 0 {
		return nil
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(rec) {
				row[name] = strings.TrimSpace(rec[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
