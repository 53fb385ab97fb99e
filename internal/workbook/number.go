package workbook

import (
	"strconv"
	"strings"
)

// nanLike are cell texts treated as zero rather than a parse failure.
var nanLike = map[string]bool{
	"":    true,
	"-":   true,
	"n/a": true,
	"na":  true,
	"nan": true,
	"nd":  true,
}

// ParseNumber converts loosely formatted bulletin cell text to a float64.
// It strips thousands separators, currency symbols, and surrounding
// whitespace, and reads parenthesized amounts as negative. Empty and
// NaN-like text yields (0, true): the bulletin uses blanks for zero amounts.
// The bool is false only for genuinely unparseable text.
func ParseNumber(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	if nanLike[strings.ToLower(cleaned)] {
		return 0, true
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, "RD", "")
	cleaned = strings.TrimSpace(cleaned)
	if nanLike[strings.ToLower(cleaned)] {
		return 0, true
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}
