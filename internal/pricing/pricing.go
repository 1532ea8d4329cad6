package pricing

import (
	"github.com/shopspring/decimal"
)

// PlatformFeePercent is the marketplace cut of the agreed price.
const PlatformFeePercent = 20

var feeRate = decimal.NewFromInt(PlatformFeePercent).Div(decimal.NewFromInt(100))

// Split derives the platform fee and cleaner payout from an agreed price.
// The fee is rounded half away from zero at cents; the payout is the
// remainder, so fee + payout always equals the price exactly. Both the
// acceptance flow and the checkout flow must go through this function.
func Split(price decimal.Decimal) (fee, payout decimal.Decimal) {
	fee = price.Mul(feeRate).Round(2)
	payout = price.Sub(fee)
	return fee, payout
}

// Cents converts a currency amount to minor units for the payment processor.
func Cents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
