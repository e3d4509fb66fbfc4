package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iwvelando/rental-compare/pkg/constants"
	"github.com/iwvelando/rental-compare/pkg/mathutil"
)

// scenarioA is a typical leveraged rental: a 200k flat with 10k of works,
// financed at 3% over 20 years.
var scenarioA = PropertyInput{
	PurchasePrice:       200000,
	RenovationCost:      10000,
	MonthlyRent:         800,
	MonthlyCondoFees:    100,
	AnnualPropertyTax:   1200,
	DownPayment:         30000,
	LoanAmount:          180000,
	AnnualInterestRate:  3.0,
	AnnualInsuranceRate: 0.36,
	LoanTermYears:       20,
}

func randomInput(rng *rand.Rand) PropertyInput {
	return PropertyInput{
		PurchasePrice:       rng.Float64() * constants.MaxPurchasePrice,
		RenovationCost:      rng.Float64() * constants.MaxRenovationCost,
		MonthlyRent:         rng.Float64() * constants.MaxMonthlyRent,
		MonthlyCondoFees:    rng.Float64() * constants.MaxMonthlyCondoFees,
		AnnualPropertyTax:   rng.Float64() * constants.MaxAnnualPropertyTax,
		DownPayment:         rng.Float64() * constants.MaxDownPayment,
		LoanAmount:          rng.Float64() * constants.MaxLoanAmount,
		AnnualInterestRate:  rng.Float64() * constants.MaxInterestRate,
		AnnualInsuranceRate: rng.Float64() * constants.MaxInsuranceRate,
		LoanTermYears:       constants.MinLoanTermYears + rng.Intn(constants.MaxLoanTermYears),
	}
}

func TestComputeMetricsScenarioA(t *testing.T) {
	m := ComputeMetrics(scenarioA)

	checks := []struct {
		name      string
		got       float64
		expected  float64
		tolerance float64
	}{
		{"NotaryFees", m.NotaryFees, 16000, 1e-9},
		{"TotalAcquisitionCost", m.TotalAcquisitionCost, 226000, 1e-9},
		{"AnnualRentalIncome", m.AnnualRentalIncome, 9600, 1e-9},
		{"AnnualRecurringCosts", m.AnnualRecurringCosts, 2400, 1e-9},
		{"GrossYieldPct", m.GrossYieldPct, 4.2478, 1e-4},
		{"NetYieldPct", m.NetYieldPct, 3.1858, 1e-4},
		{"MonthlyPrincipalPayment", m.MonthlyPrincipalPayment, 998.2757, 1e-4},
		{"MonthlyInsurancePayment", m.MonthlyInsurancePayment, 54.0, 1e-9},
		{"MonthlyLoanPayment", m.MonthlyLoanPayment, 1052.2757, 1e-4},
		{"MonthlyCashflow", m.MonthlyCashflow, -452.2757, 1e-4},
		{"CostOfCredit", m.CostOfCredit, 72546.16, 0.01},
	}

	for _, check := range checks {
		t.Run(check.name, func(t *testing.T) {
			if !mathutil.WithinTolerance(check.got, check.expected, check.tolerance) {
				t.Errorf("%s = %.6f, expected %.6f", check.name, check.got, check.expected)
			}
		})
	}

	if mathutil.Round(m.GrossYieldPct) != 4.25 {
		t.Errorf("GrossYieldPct rounds to %.2f, expected 4.25", mathutil.Round(m.GrossYieldPct))
	}
	if mathutil.Round(m.MonthlyLoanPayment) != 1052.28 {
		t.Errorf("MonthlyLoanPayment rounds to %.2f, expected 1052.28", mathutil.Round(m.MonthlyLoanPayment))
	}
}

func TestComputeMetricsZeroRateLoan(t *testing.T) {
	m := ComputeMetrics(PropertyInput{
		LoanAmount:         120000,
		AnnualInterestRate: 0,
		LoanTermYears:      10,
	})

	if m.MonthlyPrincipalPayment != 1000 {
		t.Errorf("MonthlyPrincipalPayment = %v, expected exactly 1000", m.MonthlyPrincipalPayment)
	}
	if m.MonthlyLoanPayment != 1000 {
		t.Errorf("MonthlyLoanPayment = %v, expected exactly 1000", m.MonthlyLoanPayment)
	}
	if m.CostOfCredit != 0 {
		t.Errorf("CostOfCredit = %v, expected 0", m.CostOfCredit)
	}
}

func TestComputeMetricsZeroCost(t *testing.T) {
	m := ComputeMetrics(PropertyInput{
		PurchasePrice:  0,
		RenovationCost: 0,
		MonthlyRent:    500,
		LoanTermYears:  20,
	})

	if m.TotalAcquisitionCost != 0 {
		t.Errorf("TotalAcquisitionCost = %v, expected 0", m.TotalAcquisitionCost)
	}
	if m.GrossYieldPct != 600000 {
		t.Errorf("GrossYieldPct = %v, expected 600000", m.GrossYieldPct)
	}
	if m.NetYieldPct != 600000 {
		t.Errorf("NetYieldPct = %v, expected 600000", m.NetYieldPct)
	}
	if m.MonthlyCashflow != 500 {
		t.Errorf("MonthlyCashflow = %v, expected 500", m.MonthlyCashflow)
	}
}

func TestComputeMetricsAllZero(t *testing.T) {
	m := ComputeMetrics(PropertyInput{LoanTermYears: 1})

	if m != (PropertyMetrics{}) {
		t.Errorf("ComputeMetrics(zero input) = %+v, expected all-zero metrics", m)
	}
}

func TestComputeMetricsDownPaymentIsInformational(t *testing.T) {
	without := scenarioA
	without.DownPayment = 0
	with := scenarioA
	with.DownPayment = 4000000

	if ComputeMetrics(without) != ComputeMetrics(with) {
		t.Errorf("DownPayment changed the computed metrics")
	}
}

func TestComputeMetricsDoesNotMutateInput(t *testing.T) {
	input := scenarioA
	_ = ComputeMetrics(input)
	if input != scenarioA {
		t.Errorf("ComputeMetrics modified its input: %+v", input)
	}
}

func TestComputeMetricsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		input := randomInput(rng)

		// Idempotence
		first := ComputeMetrics(input)
		second := ComputeMetrics(input)
		if first != second {
			t.Fatalf("ComputeMetrics(%+v) not deterministic: %+v vs %+v", input, first, second)
		}

		// Finite output everywhere in the valid domain
		for name, value := range map[string]float64{
			"GrossYieldPct":      first.GrossYieldPct,
			"NetYieldPct":        first.NetYieldPct,
			"MonthlyLoanPayment": first.MonthlyLoanPayment,
			"MonthlyCashflow":    first.MonthlyCashflow,
		} {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				t.Fatalf("%s is not finite for %+v", name, input)
			}
		}

		// Loan payment is principal plus insurance
		if first.MonthlyLoanPayment != first.MonthlyPrincipalPayment+first.MonthlyInsurancePayment {
			t.Fatalf("MonthlyLoanPayment %v != principal %v + insurance %v",
				first.MonthlyLoanPayment, first.MonthlyPrincipalPayment, first.MonthlyInsurancePayment)
		}

		// Zero interest is straight-line repayment
		zeroRate := input
		zeroRate.AnnualInterestRate = 0
		zm := ComputeMetrics(zeroRate)
		expected := zeroRate.LoanAmount / float64(zeroRate.LoanTermYears*12)
		if !mathutil.WithinTolerance(zm.MonthlyPrincipalPayment, expected, 1e-9) {
			t.Fatalf("zero-rate principal = %v, expected %v", zm.MonthlyPrincipalPayment, expected)
		}

		// Zero cost uses the floor of one currency unit
		zeroCost := input
		zeroCost.PurchasePrice = 0
		zeroCost.RenovationCost = 0
		cm := ComputeMetrics(zeroCost)
		if cm.GrossYieldPct != 100*cm.AnnualRentalIncome {
			t.Fatalf("zero-cost gross yield = %v, expected %v", cm.GrossYieldPct, 100*cm.AnnualRentalIncome)
		}

		// A positive interest rate costs at least as much as straight-line repayment
		if first.MonthlyPrincipalPayment < zm.MonthlyPrincipalPayment-1e-6 {
			t.Fatalf("annuity payment %v below straight-line %v", first.MonthlyPrincipalPayment, zm.MonthlyPrincipalPayment)
		}
	}
}

func TestComputeMetricsMonotonicInRent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		input := randomInput(rng)
		higher := input
		higher.MonthlyRent = input.MonthlyRent + 1 + rng.Float64()*100

		low := ComputeMetrics(input)
		high := ComputeMetrics(higher)

		if !(high.MonthlyCashflow > low.MonthlyCashflow) {
			t.Fatalf("cashflow did not increase with rent: %v -> %v", low.MonthlyCashflow, high.MonthlyCashflow)
		}
		if !(high.GrossYieldPct > low.GrossYieldPct) {
			t.Fatalf("gross yield did not increase with rent: %v -> %v", low.GrossYieldPct, high.GrossYieldPct)
		}
		if !(high.NetYieldPct > low.NetYieldPct) {
			t.Fatalf("net yield did not increase with rent: %v -> %v", low.NetYieldPct, high.NetYieldPct)
		}
	}
}

func TestComputeAll(t *testing.T) {
	inputs := []PropertyInput{
		scenarioA,
		{LoanAmount: 120000, LoanTermYears: 10},
		{MonthlyRent: 500, LoanTermYears: 20},
	}

	results := ComputeAll(inputs)
	if len(results) != len(inputs) {
		t.Fatalf("ComputeAll() returned %d results, expected %d", len(results), len(inputs))
	}
	for i, input := range inputs {
		if results[i] != ComputeMetrics(input) {
			t.Errorf("ComputeAll()[%d] = %+v, expected %+v", i, results[i], ComputeMetrics(input))
		}
	}

	if got := ComputeAll(nil); len(got) != 0 {
		t.Errorf("ComputeAll(nil) returned %d results, expected 0", len(got))
	}
}
