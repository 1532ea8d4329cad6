package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		price  string
		fee    string
		payout string
	}{
		{"90.00", "18.00", "72.00"},
		{"100.00", "20.00", "80.00"},
		{"0.01", "0.00", "0.01"},
		{"0.05", "0.01", "0.04"},
		{"33.33", "6.67", "26.66"},
		{"0.12", "0.02", "0.10"},
		{"1234.56", "246.91", "987.65"},
	}

	for _, c := range cases {
		t.Run(c.price, func(t *testing.T) {
			price := decimal.RequireFromString(c.price)
			fee, payout := Split(price)
			if fee.StringFixed(2) != c.fee {
				t.Errorf("fee = %s, want %s", fee.StringFixed(2), c.fee)
			}
			if payout.StringFixed(2) != c.payout {
				t.Errorf("payout = %s, want %s", payout.StringFixed(2), c.payout)
			}
		})
	}
}

func TestSplitSumsExactly(t *testing.T) {
	// Awkward fractions must never make fee + payout drift from the price.
	for cents := int64(1); cents < 5000; cents++ {
		price := decimal.New(cents, -2)
		fee, payout := Split(price)
		if !fee.Add(payout).Equal(price) {
			t.Fatalf("fee %s + payout %s != price %s", fee, payout, price)
		}
	}
}

func TestCents(t *testing.T) {
	if got := Cents(decimal.RequireFromString("90.00")); got != 9000 {
		t.Errorf("Cents(90.00) = %d, want 9000", got)
	}
	if got := Cents(decimal.RequireFromString("18.005")); got != 1801 {
		t.Errorf("Cents(18.005) = %d, want 1801", got)
	}
}
