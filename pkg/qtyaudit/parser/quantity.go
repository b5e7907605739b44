package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseQuantity reads the first signed number in s, ignoring thousands
// separators. The result is invalid when s holds no number.
func ParseQuantity(s string) decimal.NullDecimal {
	s = strings.ReplaceAll(NormalizeCell(s), ",", "")
	m := numberPattern.FindString(s)
	if m == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
