package parser

import (
	"strconv"
	"strings"
	"time"
)

// Accepted sale-date layouts. The storefront emits ISO dates; older
// exports use US-style slashes.
var dateLayouts = []string{"2006-01-02", "01/02/2006"}

// row wraps the decoded fields of one record with lenient positional
// accessors. Out-of-range indices read as empty; unparseable numbers
// coerce to zero. Mappers never fail on a short or mistyped row.
type row struct {
	fields []string
}

func (r row) get(idx int) string {
	if idx < 0 || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func (r row) float(idx int) float64 {
	v := r.get(idx)
	if v == "" {
		return 0
	}
	// Tolerate thousands separators like "1,204.50".
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func (r row) int(idx int) int {
	// Exports sometimes carry integer columns as "3.0".
	return int(r.float(idx))
}

func (r row) date(idx int) time.Time {
	v := r.get(idx)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
