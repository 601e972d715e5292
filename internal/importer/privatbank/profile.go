package privatbank

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Сума" with value "-10,00").
	amountSingle amountMode = iota
	// amountSplit means separate credit and debit columns.
	amountSplit
)

// Profile describes the column layout of a PrivatBank CSV export format.
// Adding a new format is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	DateCol    string
	PayerCol   string
	PurposeCol string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	CreditCol  string // used when AmountMode == amountSplit
	DebitCol   string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.PayerCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.CreditCol, p.DebitCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "business statement",
		DateCol:    "Дата операції",
		PayerCol:   "Контрагент",
		PurposeCol: "Призначення платежу",
		AmountMode: amountSplit,
		CreditCol:  "Кредит",
		DebitCol:   "Дебет",
	},
	{
		Name:       "card statement",
		DateCol:    "Дата",
		PayerCol:   "Платник",
		PurposeCol: "Призначення платежу",
		AmountMode: amountSingle,
		AmountCol:  "Сума",
	},
}
