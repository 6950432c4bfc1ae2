package ledgercsv_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/hannahwr/nestcare/internal/importer/ledgercsv"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Tracker(t *testing.T) {
	csv := `Expense export - June 2024
Account,Household

Date,Description,Category,Amount
2024-06-10,Craft supplies,Supplies,12.50
2024-06-12,Zoo admission,Outings,34.00
Total,,,46.50
`

	p := ledgercsv.NewParser()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, date(2024, 6, 10), records[0].Date)
	assert.Equal(t, "Craft supplies", records[0].Description)
	assert.Equal(t, int64(1250), records[0].AmountCents)
	require.NotNil(t, records[0].Category)
	assert.Equal(t, "Supplies", *records[0].Category)

	assert.Equal(t, date(2024, 6, 12), records[1].Date)
	assert.Equal(t, int64(3400), records[1].AmountCents)
}

func TestParser_CardDebitOnly(t *testing.T) {
	csv := `Date;Description;Category;Debit;Credit
12-06-2024;Groceries for lunches;Meals;23,40;
15-06-2024;Refund;;;10,00
20-06-2024;Diapers;Supplies;1.023,99;
`

	p := ledgercsv.NewParser()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	// The credit-only refund row is skipped.
	require.Len(t, records, 2)

	assert.Equal(t, date(2024, 6, 12), records[0].Date)
	assert.Equal(t, int64(2340), records[0].AmountCents)

	assert.Equal(t, "Diapers", records[1].Description)
	assert.Equal(t, int64(102399), records[1].AmountCents)
}

func TestParser_SimpleNegativeAmounts(t *testing.T) {
	csv := `Date,Memo,Amount
2024-06-10,Parking at museum,-4.25
2024-06-11,Snacks,-8.75
`

	p := ledgercsv.NewParser()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Bank-style negatives normalize to positive expense cents.
	assert.Equal(t, int64(425), records[0].AmountCents)
	assert.Equal(t, int64(875), records[1].AmountCents)
	assert.Nil(t, records[0].Category)
}

func TestParser_Windows1252Encoding(t *testing.T) {
	raw := "Date,Description,Category,Amount\n2024-06-10,Café snacks,Meals,5.00\n"

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(raw))
	require.NoError(t, err)

	p := ledgercsv.NewParser()
	records, err := p.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Café snacks", records[0].Description)
	assert.Equal(t, int64(500), records[0].AmountCents)
}

func TestParser_NoMatchingFormat(t *testing.T) {
	csv := `Foo,Bar
1,2
`

	p := ledgercsv.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParser_MissingDescription(t *testing.T) {
	csv := `Date,Memo,Amount
2024-06-10,,4.25
`

	p := ledgercsv.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.ErrorContains(t, err, "missing description")
}
