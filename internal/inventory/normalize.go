package inventory

// normalize.go coerces the messy strings found in real uploads into typed
// values:
//   - Currency symbols, thousands separators, and accounting-style
//     parentheses in numbers
//   - Excel formula prefixes (="value") and stray surrounding quotes
//   - Free-text that should be one of a closed set of values
//
// Numeric parsers never fail: absent or unparsable input coerces to zero so
// aggregation downstream needs no nil or error guards. Negative values pass
// through untouched; rejecting them is a caller policy, not a parser one.

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// numericPattern validates a cleaned string before handing it to the decimal
// parser. Matches integers, decimals, and scientific notation.
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CleanCell removes common upload artifacts from a cell value:
// trims whitespace, strips an Excel formula prefix (="..."), and drops
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// cleanNumeric strips currency symbols, thousands separators, and accounting
// parentheses, returning a bare numeric string ("" when nothing numeric
// remains to attempt).
func cleanNumeric(s string) string {
	s = CleanCell(s)
	if s == "" {
		return ""
	}

	// Accounting negative: "(1,234.56)"
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}
	return s
}

// ParseMoney parses a currency-like cell into a float64 amount.
// "$1,250.50" parses to 1250.50; "N/A", "", and garbage parse to 0.
func ParseMoney(s string) float64 {
	s = cleanNumeric(s)
	if s == "" || !numericPattern.MatchString(s) {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ParseDecimal parses a plain decimal cell (e.g. processing days) to float64,
// coercing absent or unparsable input to 0.
func ParseDecimal(s string) float64 {
	s = cleanNumeric(s)
	if s == "" || !numericPattern.MatchString(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseCount parses an application-count cell to an integer, coercing absent
// or unparsable input to 0. Decimal counts truncate toward zero.
func ParseCount(s string) int {
	s = cleanNumeric(s)
	if s == "" || !numericPattern.MatchString(s) {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// normalizeToken lowercases and collapses inner whitespace for closed-set
// comparisons like status values.
func normalizeToken(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(CleanCell(s))), " ")
}
