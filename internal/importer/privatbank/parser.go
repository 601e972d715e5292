package privatbank

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "furnipay/internal/encoding"
)

// Row is one incoming transfer from a statement. Outgoing rows are
// filtered during parsing: only money received can fund payouts.
type Row struct {
	Date    time.Time
	Amount  int64
	Payer   string
	Purpose string
}

// Parser reads PrivatBank CSV statement exports and produces statement rows.
// It auto-detects which export format is being used by matching column
// headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching statement format found: expected business or card statement columns")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:])
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

// parseRows extracts incoming transfers from data rows using the matched profile.
func parseRows(p *Profile, cols colIndex, rows [][]string) ([]Row, error) {
	dateIdx := cols[p.DateCol]
	payerIdx := cols[p.PayerCol]

	purposeIdx := -1
	if idx, ok := cols[p.PurposeCol]; ok {
		purposeIdx = idx
	}

	var out []Row

	for _, row := range rows {
		date, ok := parseDate(row, dateIdx)
		if !ok {
			// Probably a footer or totals row.
			continue
		}

		amount, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		out = append(out, Row{
			Date:    date,
			Amount:  amount,
			Payer:   cellValue(row, payerIdx),
			Purpose: cellValue(row, purposeIdx),
		})
	}

	return out, nil
}

// dateLayouts covers the variants seen across PrivatBank exports.
var dateLayouts = []string{
	"02.01.2006 15:04",
	"02.01.2006",
}

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

// parseAmount extracts the incoming amount from a row. Outgoing money
// (negative single amounts, debit column) is rejected.
func parseAmount(p *Profile, cols colIndex, row []string) (int64, bool) {
	switch p.AmountMode {
	case amountSingle:
		s := cellValue(row, cols[p.AmountCol])
		if s == "" {
			return 0, false
		}

		kopecks, err := parseStatementAmount(s)
		if err != nil || kopecks <= 0 {
			return 0, false
		}

		return kopecks, true
	case amountSplit:
		s := cellValue(row, cols[p.CreditCol])
		if s == "" {
			return 0, false
		}

		kopecks, err := parseStatementAmount(s)
		if err != nil || kopecks <= 0 {
			return 0, false
		}

		return kopecks, true
	}

	return 0, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
