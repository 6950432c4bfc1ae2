// Package ledgercsv parses expense tracker CSV exports. The layout
// (column names, delimiter quirks, European decimal amounts) is
// auto-detected by matching headers against known profiles.
package ledgercsv

import "time"

// Record is one parsed expense row.
type Record struct {
	Date        time.Time
	Description string
	Category    *string
	AmountCents int64
}
