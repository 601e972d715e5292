package privatbank

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseStatementAmount parses a PrivatBank amount string into kopecks.
// Exports mix formats: "12 500,00", "12500.00", "-588,74". Spaces
// (including non-breaking ones) are thousand separators.
func parseStatementAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(s, " ", "")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
