package valueobject

import (
	"github.com/shopspring/decimal"
)

// QuantityPrecision is the number of decimal places stock quantities are rounded to.
// Unit conversions must round-trip exactly at this precision.
const QuantityPrecision = 3

// RoundQuantity rounds a quantity to the system quantity precision
func RoundQuantity(q decimal.Decimal) decimal.Decimal {
	return q.Round(QuantityPrecision)
}

// ToBaseUnits converts a quantity expressed in a package unit to base units.
// rate is the number of base units per package unit.
func ToBaseUnits(quantity, rate decimal.Decimal) decimal.Decimal {
	return RoundQuantity(quantity.Mul(rate))
}

// FromBaseUnits converts a base-unit quantity back to a package unit.
func FromBaseUnits(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.DivRound(rate, QuantityPrecision)
}
