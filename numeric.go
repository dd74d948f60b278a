package cellgraph

import (
	"fmt"
	"strconv"
	"strings"
)

// parseStrictFloat parses s as a plain decimal number, rejecting the
// special forms strconv.ParseFloat otherwise accepts (Inf, NaN, hex
// floats) — spec §4.3 calls for "strict decimal parse", and a formula
// that coerces the text "Infinity" into a number would be surprising.
func parseStrictFloat(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E':
		default:
			return 0, fmt.Errorf("not a decimal number: %q", s)
		}
	}
	return strconv.ParseFloat(trimmed, 64)
}
