package worklog

import (
	"slices"

	"github.com/shopspring/decimal"
)

var secondsPerHour = decimal.NewFromInt(3600)

// payPrecision is the number of fractional digits kept when dividing by an
// hour. Numerators carry few decimals, so no sum of them can land within
// 10^-payPrecision of a half cent without being exactly on it.
const payPrecision = 32

// payNumerator is seconds * rate, exact.
func payNumerator(seconds int64, rate float64) decimal.Decimal {
	return decimal.NewFromInt(seconds).Mul(decimal.NewFromFloat(rate))
}

func perHour(n decimal.Decimal) decimal.Decimal {
	return n.DivRound(secondsPerHour, payPrecision)
}

// ComputePay returns (seconds / 3600) * rate without rounding to cents. The
// product is taken before the division so whole-cent fractions stay exact.
func ComputePay(seconds int64, rate float64) decimal.Decimal {
	return perHour(payNumerator(seconds, rate))
}

// RoundMoney rounds half away from zero to two places. Pay is never
// negative, so this is half-up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RawPay is the unrounded pay of r.
func (r Record) RawPay() decimal.Decimal {
	return ComputePay(r.seconds, r.HourlyRate)
}

// Pay is the displayed and exported pay of r, rounded to cents.
func (r Record) Pay() decimal.Decimal {
	return RoundMoney(r.RawPay())
}

// TotalPay sums the unrounded pay of every record and rounds once at the end.
// Numerators are summed and divided by an hour once, so the total is exact.
func TotalPay(records []Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(payNumerator(r.seconds, r.HourlyRate))
	}
	return RoundMoney(perHour(sum))
}

// Sorted returns a copy of records ordered by StartTime, most recent first.
// Records with equal start times keep their relative order.
func Sorted(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		return b.StartTime.Compare(a.StartTime)
	})
	return out
}
