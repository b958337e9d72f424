package fees

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatUnits converts a base-unit amount to a display-unit decimal
// string by shifting the decimal point left by decimals places. Trailing
// fractional zeros are trimmed. The conversion is exact: no floating
// point is involved.
func FormatUnits(n *big.Int, decimals int) string {
	if n == nil {
		return "0"
	}
	if decimals <= 0 {
		return n.String()
	}

	sign := ""
	abs := new(big.Int).Abs(n)
	if n.Sign() < 0 {
		sign = "-"
	}

	divisor := pow10(decimals)
	whole, frac := new(big.Int).QuoRem(abs, divisor, new(big.Int))
	if frac.Sign() == 0 {
		return sign + whole.String()
	}

	fracStr := strings.TrimRight(fmt.Sprintf("%0*s", decimals, frac.String()), "0")
	return sign + whole.String() + "." + fracStr
}

// ParseUnits converts a display-unit decimal string to base units.
// Fractional digits beyond decimals are rejected rather than rounded,
// since silent rounding of monetary input hides bugs.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > decimals {
		return nil, fmt.Errorf("fees: %q has more than %d fractional digits", s, decimals)
	}

	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("fees: invalid decimal %q", s)
	}
	return n, nil
}

// pow10 returns 10^n.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
