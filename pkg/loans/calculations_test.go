package loans

import (
	"math"
	"testing"
)

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		name     string
		annual   float64
		expected float64
	}{
		{"Zero rate", 0, 0},
		{"Three percent", 3.0, 0.0025},
		{"Six percent", 6.0, 0.005},
		{"Upper bound", 10.0, 10.0 / 100 / 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyRate(tt.annual); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("MonthlyRate(%v) = %v, expected %v", tt.annual, got, tt.expected)
			}
		})
	}
}

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		loanAmount         float64
		annualInterestRate float64
		termYears          int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Standard 30-year mortgage",
			loanAmount:         240000,
			annualInterestRate: 6.0,
			termYears:          30,
			expectedRange:      []float64{1438.92, 1438.93}, // Around 1438.92
		},
		{
			name:               "5-year car loan",
			loanAmount:         20000,
			annualInterestRate: 4.0,
			termYears:          5,
			expectedRange:      []float64{368.33, 368.34}, // Around 368.33
		},
		{
			name:               "20-year rental property loan",
			loanAmount:         180000,
			annualInterestRate: 3.0,
			termYears:          20,
			expectedRange:      []float64{998.27, 998.28}, // Around 998.28
		},
		{
			name:               "Zero interest loan",
			loanAmount:         120000,
			annualInterestRate: 0.0,
			termYears:          10,
			expectedRange:      []float64{1000, 1000}, // Exactly 1000
		},
		{
			name:               "No loan",
			loanAmount:         0,
			annualInterestRate: 5.0,
			termYears:          20,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "No loan at zero interest",
			loanAmount:         0,
			annualInterestRate: 0,
			termYears:          1,
			expectedRange:      []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.loanAmount, tt.annualInterestRate, tt.termYears)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.4f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateMonthlyPaymentZeroRateIsStraightLine(t *testing.T) {
	for _, years := range []int{1, 7, 15, 20, 30} {
		for _, amount := range []float64{0, 1, 99999.99, 250000, 4000000} {
			got := CalculateMonthlyPayment(amount, 0, years)
			want := amount / float64(years*12)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("CalculateMonthlyPayment(%v, 0, %d) = %v, expected %v", amount, years, got, want)
			}
		}
	}
}

func TestCalculateMonthlyPaymentRepaysPrincipal(t *testing.T) {
	// Amortizing month by month with the computed payment must leave no balance.
	loanAmount := 180000.0
	rate := 3.0
	years := 20
	payment := CalculateMonthlyPayment(loanAmount, rate, years)

	balance := loanAmount
	for month := 0; month < TermMonths(years); month++ {
		interest := balance * MonthlyRate(rate)
		balance -= payment - interest
	}
	if math.Abs(balance) > 1e-6 {
		t.Errorf("balance after final payment = %v, expected 0", balance)
	}
}

func TestCalculateMonthlyInsurance(t *testing.T) {
	tests := []struct {
		name          string
		loanAmount    float64
		insuranceRate float64
		expected      float64
	}{
		{"Typical borrower insurance", 180000, 0.36, 54.0},
		{"Zero rate", 180000, 0, 0},
		{"Zero loan", 0, 0.36, 0},
		{"Upper bound rate", 120000, 4.0, 400.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyInsurance(tt.loanAmount, tt.insuranceRate)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("CalculateMonthlyInsurance() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestTotalCost(t *testing.T) {
	total, costOfCredit := TotalCost(180000, 3.0, 0.36, 20)
	if math.Abs(total-252546.16) > 0.01 {
		t.Errorf("TotalCost() total = %.2f, expected 252546.16", total)
	}
	if math.Abs(costOfCredit-72546.16) > 0.01 {
		t.Errorf("TotalCost() costOfCredit = %.2f, expected 72546.16", costOfCredit)
	}

	total, costOfCredit = TotalCost(120000, 0, 0, 10)
	if total != 120000 || costOfCredit != 0 {
		t.Errorf("TotalCost() zero-rate = (%v, %v), expected (120000, 0)", total, costOfCredit)
	}
}
