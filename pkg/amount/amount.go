// Package amount converts between human decimal strings and integer base
// units without going through floating point.
package amount

import (
	"fmt"
	"strconv"
	"strings"
)

// SOLDecimals is the number of decimal places in SOL (1 SOL = 1e9 lamports).
const SOLDecimals = 9

// Parse converts a decimal string to integer base units for an asset with the
// given number of decimals. Excess fractional digits are rejected rather than
// silently truncated.
func Parse(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		for i := 0; i < decimals; i++ {
			prev := n
			n *= 10
			if n/10 != prev {
				return 0, fmt.Errorf("amount overflows uint64")
			}
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]
	if whole == "" {
		whole = "0"
	}
	if frac == "" {
		return 0, fmt.Errorf("invalid decimal format")
	}

	if len(frac) > decimals {
		return 0, fmt.Errorf("too many decimal places: asset has %d", decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	return strconv.ParseUint(whole+frac, 10, 64)
}

// Format converts integer base units to a decimal string by inserting the
// decimal point. Format(24981836, 9) = "0.024981836".
func Format(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	for len(s) <= decimals {
		s = "0" + s
	}

	if decimals == 0 {
		return s
	}
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// ParseSOL converts a SOL decimal string to lamports.
func ParseSOL(s string) (uint64, error) {
	return Parse(s, SOLDecimals)
}

// FormatSOL converts lamports to a SOL decimal string.
func FormatSOL(lamports uint64) string {
	return Format(lamports, SOLDecimals)
}
