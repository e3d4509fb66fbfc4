// Package metrics computes the investment indicators of a rental property from
// its raw purchase, rent, cost and financing attributes.
//
// Every function in this package is pure: identical inputs always produce
// identical outputs, and inputs are never modified. Inputs are expected to be
// validated upstream; out-of-range values are not rejected here.
package metrics

import (
	"github.com/iwvelando/rental-compare/pkg/constants"
	"github.com/iwvelando/rental-compare/pkg/loans"
	"github.com/iwvelando/rental-compare/pkg/mathutil"
)

// PropertyInput holds the attributes of one property as entered by the user.
// Currency amounts are in a single implied currency; rates are percentages.
type PropertyInput struct {
	PurchasePrice       float64 `json:"purchasePrice" yaml:"purchasePrice" mapstructure:"purchasePrice"`
	RenovationCost      float64 `json:"renovationCost" yaml:"renovationCost" mapstructure:"renovationCost"`
	MonthlyRent         float64 `json:"monthlyRent" yaml:"monthlyRent" mapstructure:"monthlyRent"`
	MonthlyCondoFees    float64 `json:"monthlyCondoFees" yaml:"monthlyCondoFees" mapstructure:"monthlyCondoFees"`
	AnnualPropertyTax   float64 `json:"annualPropertyTax" yaml:"annualPropertyTax" mapstructure:"annualPropertyTax"`
	DownPayment         float64 `json:"downPayment" yaml:"downPayment" mapstructure:"downPayment"` // informational, not used by any formula
	LoanAmount          float64 `json:"loanAmount" yaml:"loanAmount" mapstructure:"loanAmount"`
	AnnualInterestRate  float64 `json:"annualInterestRate" yaml:"annualInterestRate" mapstructure:"annualInterestRate"`
	AnnualInsuranceRate float64 `json:"annualInsuranceRate" yaml:"annualInsuranceRate" mapstructure:"annualInsuranceRate"`
	LoanTermYears       int     `json:"loanTermYears" yaml:"loanTermYears" mapstructure:"loanTermYears"`
}

// PropertyMetrics holds the indicators derived from a PropertyInput.
type PropertyMetrics struct {
	NotaryFees              float64 `json:"notaryFees"`
	TotalAcquisitionCost    float64 `json:"totalAcquisitionCost"`
	AnnualRentalIncome      float64 `json:"annualRentalIncome"`
	AnnualRecurringCosts    float64 `json:"annualRecurringCosts"`
	GrossYieldPct           float64 `json:"grossYieldPct"`
	NetYieldPct             float64 `json:"netYieldPct"`
	MonthlyPrincipalPayment float64 `json:"monthlyPrincipalPayment"`
	MonthlyInsurancePayment float64 `json:"monthlyInsurancePayment"`
	MonthlyLoanPayment      float64 `json:"monthlyLoanPayment"`
	MonthlyCashflow         float64 `json:"monthlyCashflow"`
	CostOfCredit            float64 `json:"costOfCredit"`
}

// ComputeMetrics derives the investment indicators of one property.
//
// Yields are computed against the total acquisition cost floored at
// constants.AcquisitionCostFloor, so a property with no price and no
// renovation still yields a finite percentage. A zero interest rate repays
// the loan in equal straight-line installments.
func ComputeMetrics(input PropertyInput) PropertyMetrics {
	var m PropertyMetrics

	m.NotaryFees = constants.NotaryFeeRate * input.PurchasePrice
	m.TotalAcquisitionCost = input.PurchasePrice + m.NotaryFees + input.RenovationCost
	m.AnnualRentalIncome = input.MonthlyRent * constants.MonthsPerYear
	m.GrossYieldPct = mathutil.FlooredPercentage(m.AnnualRentalIncome, m.TotalAcquisitionCost, constants.AcquisitionCostFloor)

	m.AnnualRecurringCosts = input.MonthlyCondoFees*constants.MonthsPerYear + input.AnnualPropertyTax
	m.NetYieldPct = mathutil.FlooredPercentage(m.AnnualRentalIncome-m.AnnualRecurringCosts, m.TotalAcquisitionCost, constants.AcquisitionCostFloor)

	m.MonthlyPrincipalPayment = loans.CalculateMonthlyPayment(input.LoanAmount, input.AnnualInterestRate, input.LoanTermYears)
	m.MonthlyInsurancePayment = loans.CalculateMonthlyInsurance(input.LoanAmount, input.AnnualInsuranceRate)
	m.MonthlyLoanPayment = m.MonthlyPrincipalPayment + m.MonthlyInsurancePayment

	m.MonthlyCashflow = input.MonthlyRent - (m.AnnualRecurringCosts / constants.MonthsPerYear) - m.MonthlyLoanPayment

	_, m.CostOfCredit = loans.TotalCost(input.LoanAmount, input.AnnualInterestRate, input.AnnualInsuranceRate, input.LoanTermYears)

	return m
}

// ComputeAll computes the metrics of each input independently. The result is
// in the same order as inputs.
func ComputeAll(inputs []PropertyInput) []PropertyMetrics {
	results := make([]PropertyMetrics, len(inputs))
	for i, input := range inputs {
		results[i] = ComputeMetrics(input)
	}
	return results
}
