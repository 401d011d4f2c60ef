package BulkUpload

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// row is one data row of an upload. LineNo is the 1-based line number within
// the file, counting the header, so the first data row reports as line 2.
type row struct {
	LineNo int
	Fields []string
}

// field returns the trimmed cell at index i, or "" when the row is short.
func (r row) field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return strings.TrimSpace(r.Fields[i])
}

type document struct {
	Headers []string
	Rows    []row
}

// headerIndex maps normalized header names to their column position.
func (d document) headerIndex() map[string]int {
	idx := make(map[string]int, len(d.Headers))
	for i, h := range d.Headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// parse splits comma-delimited text into a header row and data rows. Blank
// lines are dropped but still advance the line counter, so reported line
// numbers always match the source file.
func parse(content []byte) document {
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	var doc document
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		if doc.Headers == nil {
			doc.Headers = fields
			continue
		}
		doc.Rows = append(doc.Rows, row{LineNo: i + 1, Fields: fields})
	}
	return doc
}

// parseDecimal reads a numeric cell, treating blanks and garbage as zero the
// way the upload sources tend to leave them.
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseDate reads a yyyy-mm-dd cell, falling back when blank or malformed.
func parseDate(s string, fallback time.Time) time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return t
}
