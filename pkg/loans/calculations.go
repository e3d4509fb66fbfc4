// Package loans provides the monthly payment math for amortizing loans.
package loans

import (
	"math"

	"github.com/iwvelando/rental-compare/pkg/constants"
)

// MonthlyRate converts an annual percentage rate into the periodic monthly rate.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / constants.PercentageMultiplier / constants.MonthsPerYear
}

// TermMonths converts a loan term in years into a number of monthly payments.
func TermMonths(termYears int) int {
	return termYears * constants.MonthsPerYear
}

// CalculateMonthlyPayment calculates the monthly principal and interest payment
// for a loan using the standard annuity formula.
func CalculateMonthlyPayment(loanAmount, annualInterestRate float64, termYears int) float64 {
	months := TermMonths(termYears)
	rate := MonthlyRate(annualInterestRate)
	if rate == 0 {
		// The annuity formula is undefined at r=0; its limit is straight-line repayment.
		return loanAmount / float64(months)
	}

	return loanAmount * rate / (1 - math.Pow(1+rate, -float64(months)))
}

// CalculateMonthlyInsurance calculates the monthly borrower insurance premium,
// charged as an annual percentage of the initial loan amount.
func CalculateMonthlyInsurance(loanAmount, annualInsuranceRate float64) float64 {
	return (loanAmount * annualInsuranceRate / constants.PercentageMultiplier) / constants.MonthsPerYear
}

// TotalCost returns the total paid over the life of the loan, insurance included,
// and the share of it that is interest and insurance.
func TotalCost(loanAmount, annualInterestRate, annualInsuranceRate float64, termYears int) (total, costOfCredit float64) {
	monthly := CalculateMonthlyPayment(loanAmount, annualInterestRate, termYears) +
		CalculateMonthlyInsurance(loanAmount, annualInsuranceRate)
	total = monthly * float64(TermMonths(termYears))
	return total, total - loanAmount
}
