package ledger

import "testing"

func TestDeriveTotals(t *testing.T) {
	cases := []struct {
		name                                           string
		bhaav, weight, lungar, mandiTax, comm, majduri float64
		wantGross, wantDeductions, wantNet             float64
	}{
		{
			name:  "full lot",
			bhaav: 2500, weight: 200,
			lungar: 20, mandiTax: 50, comm: 100, majduri: 75,
			wantGross: 500000, wantDeductions: 245, wantNet: 499755,
		},
		{
			name:  "no deductions",
			bhaav: 30, weight: 100,
			wantGross: 3000, wantDeductions: 0, wantNet: 3000,
		},
		{
			name:  "deductions rounded to paise",
			bhaav: 25, weight: 10,
			lungar: 10.125,
			wantGross: 250, wantDeductions: 10.13, wantNet: 239.87,
		},
		{
			name:  "deductions exceed gross",
			bhaav: 1, weight: 10,
			lungar: 5, mandiTax: 5, comm: 5, majduri: 5,
			wantGross: 10, wantDeductions: 20, wantNet: -10,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveTotals(tc.bhaav, tc.weight, tc.lungar, tc.mandiTax, tc.comm, tc.majduri)
			if got.GrossAmount != tc.wantGross {
				t.Fatalf("gross = %v, want %v", got.GrossAmount, tc.wantGross)
			}
			if got.TotalDeductions != tc.wantDeductions {
				t.Fatalf("deductions = %v, want %v", got.TotalDeductions, tc.wantDeductions)
			}
			if got.NetAmount != tc.wantNet {
				t.Fatalf("net = %v, want %v", got.NetAmount, tc.wantNet)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{2.125, 2.13},   // half rounds away from zero
		{-0.125, -0.13}, // also for negatives
		{100, 100},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
