// Package parser implements the lenient delimited-text reader used for the
// storefront export files. The exports are CSV-shaped but frequently
// malformed (unterminated quotes, stray blank lines, CRLF mixes), so the
// reader never fails on bad input: structural problems surface downstream
// as skipped rows, not as errors.
package parser

import "strings"

// SplitRecords splits raw export text into logical records. Quoted fields
// may span multiple lines; a doubled quote inside a quoted region is kept
// verbatim for DecodeFields to unescape. Carriage returns are dropped
// unconditionally and whitespace-only records are discarded. The header
// record is included; callers discard index 0.
//
// An unterminated quote at end of input flushes the remaining text as-is.
// Malformed files surface as row-mapping failures, not splitter failures.
func SplitRecords(text string) []string {
	var records []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				// Escaped quote: keep both characters for the decoder.
				cur.WriteString(`""`)
				i++
			} else {
				inQuotes = !inQuotes
				cur.WriteByte('"')
			}
		case ch == '\r':
			// dropped
		case ch == '\n' && !inQuotes:
			flushRecord(&records, &cur)
		default:
			cur.WriteByte(ch)
		}
	}
	flushRecord(&records, &cur)

	return records
}

func flushRecord(records *[]string, cur *strings.Builder) {
	rec := strings.TrimSpace(cur.String())
	cur.Reset()
	if rec == "" {
		return
	}
	*records = append(*records, rec)
}

// DecodeFields splits one logical record into unescaped field values.
// Commas inside quotes are data; a doubled quote inside a quoted region
// decodes to a literal quote. No field-count validation happens here.
func DecodeFields(record string) []string {
	fields := make([]string, 0, 16)
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(record); i++ {
		ch := record[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(record) && record[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cur.String())

	return fields
}
