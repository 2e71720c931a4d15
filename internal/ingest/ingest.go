package ingest

import "errors"

// ErrBadHeader is returned when the CSV header is missing a required
// column. This is the only whole-file failure; everything after the
// header is handled row by row.
var ErrBadHeader = errors.New("csv header missing required columns")

// Report says exactly what a bulk upload did. Rows are committed
// independently, so a partial import is the expected outcome, not an
// error: applied rows stay applied and every skipped row is listed with
// its reason.
type Report struct {
	Applied int
	Skipped []Skip
}

// Skip records one rejected row. Line is 1-based in the uploaded file,
// counting the header.
type Skip struct {
	Line   int
	SKU    string
	Reason string
}

func (r *Report) skip(line int, sku, reason string) {
	r.Skipped = append(r.Skipped, Skip{Line: line, SKU: sku, Reason: reason})
}
