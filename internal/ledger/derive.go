package ledger

import "math"

// Totals - derived monetary fields of a trade entry.
type Totals struct {
	GrossAmount     float64
	TotalDeductions float64
	NetAmount       float64
}

// Round2 rounds to two decimal places on the scaled value (multiply by 100,
// round half away from zero, divide by 100) so rounding drift cannot
// accumulate across the full-history balance sums.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// DeriveTotals computes a trade's monetary totals from its raw inputs.
// grossAmount = bhaav * weight (bhaav is the agreed rate for the lot,
// not divided by 100). Pure function; create and update both go through it.
func DeriveTotals(bhaav, weight, lungar, mandiTax, commission, majduri float64) Totals {
	gross := Round2(bhaav * weight)
	deductions := Round2(lungar + mandiTax + commission + majduri)
	return Totals{
		GrossAmount:     gross,
		TotalDeductions: deductions,
		NetAmount:       Round2(gross - deductions),
	}
}
