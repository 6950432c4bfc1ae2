package ledgercsv

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Amount" with value "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one export format. Adding a
// new format is just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	CategoryCol string // optional; empty means the format has no category
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this
// profile to match. CategoryCol is never required.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific profiles come first to avoid false
// matches.
var profiles = []Profile{
	{
		Name:        "card",
		DateCol:     "Date",
		DescCol:     "Description",
		CategoryCol: "Category",
		AmountMode:  amountSplit,
		DebitCol:    "Debit",
		CreditCol:   "Credit",
	},
	{
		Name:        "tracker",
		DateCol:     "Date",
		DescCol:     "Description",
		CategoryCol: "Category",
		AmountMode:  amountSingle,
		AmountCol:   "Amount",
	},
	{
		Name:       "simple",
		DateCol:    "Date",
		DescCol:    "Memo",
		AmountMode: amountSingle,
		AmountCol:  "Amount",
	},
}
