package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ConvertXLSX renders the first sheet of an XLSX export as delimited text
// compatible with SplitRecords, so spreadsheet uploads enter the same
// parse path as plain-text exports.
func ConvertXLSX(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return "", fmt.Errorf("failed to read xlsx row: %w", err)
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to encode row: %w", err)
		}
	}
	if err := rows.Error(); err != nil {
		return "", fmt.Errorf("error iterating xlsx rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}
