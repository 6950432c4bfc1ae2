package ledgercsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/hannahwr/nestcare/internal/encoding"
)

// Parser reads expense CSV exports and produces expense records. It
// auto-detects which format is being used by matching column headers
// against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching export format found: expected columns for card, tracker, or simple")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// detectDelimiter picks the column separator by inspecting the first
// line. Semicolon-delimited exports pair with European decimal commas.
func detectDelimiter(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.ContainsRune(line, ';') {
		return ';'
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts records from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file
// (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Record, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	categoryIdx := -1
	if p.CategoryCol != "" {
		if idx, ok := cols[p.CategoryCol]; ok {
			categoryIdx = idx
		}
	}

	var records []Record

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		cents, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		rec := Record{
			Date:        date,
			Description: desc,
			AmountCents: cents,
		}

		if cat := cellValue(row, categoryIdx); cat != "" {
			rec.Category = &cat
		}

		records = append(records, rec)
	}

	return records, nil
}

// dateLayouts are tried in order; the first parse wins.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "02-01-2006"}

// parseDate tries to parse a date from the given cell index. Returns
// false for empty cells or unparseable values (footer rows, etc).
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// rowAmount extracts the expense amount in cents from a row based on
// the profile's amount mode. Amounts are normalized to positive cents;
// credit rows are skipped since a care expense ledger has no income
// side.
func rowAmount(p *Profile, cols colIndex, row []string) (int64, bool) {
	switch p.AmountMode {
	case amountSingle:
		return singleAmount(row, cols[p.AmountCol])
	case amountSplit:
		return splitAmount(row, cols[p.DebitCol])
	}

	return 0, false
}

// singleAmount handles a single signed amount column. Tracker exports
// list purchases positive, bank-style exports negative; either way the
// row is an expense.
func singleAmount(row []string, idx int) (int64, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false
	}

	cents, err := parseAmountCents(s)
	if err != nil || cents == 0 {
		return 0, false
	}

	return abs(cents), true
}

// splitAmount reads the debit column only.
func splitAmount(row []string, debitIdx int) (int64, bool) {
	s := cellValue(row, debitIdx)
	if s == "" {
		return 0, false
	}

	cents, err := parseAmountCents(s)
	if err != nil || cents == 0 {
		return 0, false
	}

	return abs(cents), true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
