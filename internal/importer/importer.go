// Package importer turns expense ledger exports into expense records.
package importer

import (
	"io"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/expense"
	"github.com/hannahwr/nestcare/internal/importer/ledgercsv"
)

// Format names a supported ledger export layout.
type Format string

const (
	FormatLedger Format = "ledger"
)

// Record is one parsed expense row, not yet attached to a session.
type Record = ledgercsv.Record

type Parser interface {
	Parse(r io.Reader) ([]Record, error)
}

// ExpenseParams binds parsed records to a target session. The ledger
// date is folded into the description since expenses bill by session
// date, not purchase date.
func ExpenseParams(sessionID uuid.UUID, records []Record) []expense.CreateParams {
	params := make([]expense.CreateParams, 0, len(records))

	for _, rec := range records {
		desc := rec.Description
		if !rec.Date.IsZero() {
			desc = rec.Date.Format("2006-01-02") + " " + desc
		}

		params = append(params, expense.CreateParams{
			SessionID:   sessionID,
			AmountCents: rec.AmountCents,
			Category:    rec.Category,
			Description: desc,
		})
	}

	return params
}
