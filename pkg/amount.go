package pkg

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatAmount renders base units as a decimal string with the given number
// of decimals, e.g. FormatAmount(1500, 3) == "1.5".
func FormatAmount(baseUnits *big.Int, decimals int32) string {
	return decimal.NewFromBigInt(baseUnits, -decimals).String()
}

// ParseAmount converts a decimal string into base units. Amounts with more
// fractional digits than decimals, negative amounts and amounts that do not
// fit into a uint64 are rejected.
func ParseAmount(s string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}

	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	units := scaled.BigInt()
	if !units.IsUint64() {
		return 0, fmt.Errorf("amount %q does not fit into a u64", s)
	}
	return units.Uint64(), nil
}
