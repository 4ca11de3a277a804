package hedera

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TinybarPerHbar is the number of tinybars in one hbar.
const TinybarPerHbar = 100_000_000

// Hbar is an amount of network currency, stored as a signed tinybar count so
// arithmetic stays exact. Negative amounts are meaningful in transfer lists
// (debits).
type Hbar struct {
	tinybar int64
}

// NewHbar returns an amount of whole hbars.
func NewHbar(hbar int64) Hbar {
	return Hbar{tinybar: hbar * TinybarPerHbar}
}

// HbarFromTinybar returns an amount expressed in tinybars.
func HbarFromTinybar(tinybar int64) Hbar {
	return Hbar{tinybar: tinybar}
}

// HbarFromString parses a decimal hbar amount such as "1.5" or "-0.00000001".
// Amounts with more than eight fractional digits cannot be represented in
// tinybars and are rejected.
func HbarFromString(s string) (Hbar, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Hbar{}, fmt.Errorf("invalid hbar amount %q: %w", s, err)
	}
	t := d.Mul(decimal.NewFromInt(TinybarPerHbar))
	if !t.IsInteger() {
		return Hbar{}, fmt.Errorf("hbar amount %q is below tinybar resolution", s)
	}
	return Hbar{tinybar: t.IntPart()}, nil
}

// Tinybar returns the amount in tinybars.
func (h Hbar) Tinybar() int64 { return h.tinybar }

// Decimal returns the amount in hbars as an exact decimal.
func (h Hbar) Decimal() decimal.Decimal {
	return decimal.NewFromInt(h.tinybar).DivRound(decimal.NewFromInt(TinybarPerHbar), 8)
}

// Negated returns the amount with its sign flipped.
func (h Hbar) Negated() Hbar { return Hbar{tinybar: -h.tinybar} }

// IsZero reports whether the amount is zero.
func (h Hbar) IsZero() bool { return h.tinybar == 0 }

// String renders the amount in hbars with the currency symbol, e.g. "1.5 ℏ".
func (h Hbar) String() string {
	return fmt.Sprintf("%s ℏ", h.Decimal().String())
}
