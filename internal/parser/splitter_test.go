package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRecordsBasic(t *testing.T) {
	records := SplitRecords("a,b,c\n1,2,3\n4,5,6\n")

	require.Len(t, records, 3)
	assert.Equal(t, "a,b,c", records[0])
	assert.Equal(t, "1,2,3", records[1])
	assert.Equal(t, "4,5,6", records[2])
}

func TestSplitRecordsQuotedNewline(t *testing.T) {
	records := SplitRecords("title,notes\nmug,\"line one\nline two\"\n")

	require.Len(t, records, 2)
	assert.Equal(t, "mug,\"line one\nline two\"", records[1])
}

func TestSplitRecordsDropsCarriageReturns(t *testing.T) {
	records := SplitRecords("a,b\r\n1,2\r\n")

	require.Len(t, records, 2)
	assert.Equal(t, "a,b", records[0])
	assert.Equal(t, "1,2", records[1])
}

func TestSplitRecordsDiscardsBlankRecords(t *testing.T) {
	records := SplitRecords("a,b\n\n   \n1,2\n\n")

	require.Len(t, records, 2)
	assert.Equal(t, "1,2", records[1])
}

func TestSplitRecordsFlushesTrailingRecord(t *testing.T) {
	records := SplitRecords("a,b\n1,2")

	require.Len(t, records, 2)
	assert.Equal(t, "1,2", records[1])
}

func TestSplitRecordsUnterminatedQuote(t *testing.T) {
	// A lost closing quote swallows the rest of the file into one record
	// instead of failing.
	records := SplitRecords("a,b\n1,\"unterminated\n2,3\n")

	require.Len(t, records, 2)
	assert.Equal(t, "1,\"unterminated\n2,3", records[1])
}

func TestSplitRecordsKeepsEscapedQuoteVerbatim(t *testing.T) {
	records := SplitRecords("h\n\"say \"\"hi\"\"\"\n")

	require.Len(t, records, 2)
	assert.Equal(t, `"say ""hi"""`, records[1])
}

func TestDecodeFieldsQuotedComma(t *testing.T) {
	fields := DecodeFields(`mug,"Portland, OR",12.50`)

	require.Len(t, fields, 3)
	assert.Equal(t, "Portland, OR", fields[1])
}

func TestDecodeFieldsEscapedQuote(t *testing.T) {
	fields := DecodeFields(`"say ""hi""",x`)

	require.Len(t, fields, 2)
	assert.Equal(t, `say "hi"`, fields[0])
}

func TestDecodeFieldsEmptyAndTrailing(t *testing.T) {
	fields := DecodeFields("a,,c,")

	require.Len(t, fields, 4)
	assert.Equal(t, "", fields[1])
	assert.Equal(t, "", fields[3])
}

func TestSplitThenDecodeRoundTrip(t *testing.T) {
	// The canonical awkward field: comma, embedded newline and an escaped
	// quote, all inside one quoted region.
	input := "header\n\"a, b\nc\"\"d\"\n"

	records := SplitRecords(input)
	require.Len(t, records, 2)

	fields := DecodeFields(records[1])
	require.Len(t, fields, 1)
	assert.Equal(t, "a, b\nc\"d", fields[0])
}
