package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/rental-compare/pkg/constants"
	"github.com/iwvelando/rental-compare/pkg/metrics"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Limits holds the upper bounds enforced on currency amounts. Percentages and
// the loan term have fixed ranges.
type Limits struct {
	MaxPurchasePrice     float64 `yaml:"maxPurchasePrice" mapstructure:"maxPurchasePrice"`
	MaxRenovationCost    float64 `yaml:"maxRenovationCost" mapstructure:"maxRenovationCost"`
	MaxMonthlyRent       float64 `yaml:"maxMonthlyRent" mapstructure:"maxMonthlyRent"`
	MaxMonthlyCondoFees  float64 `yaml:"maxMonthlyCondoFees" mapstructure:"maxMonthlyCondoFees"`
	MaxAnnualPropertyTax float64 `yaml:"maxAnnualPropertyTax" mapstructure:"maxAnnualPropertyTax"`
	MaxDownPayment       float64 `yaml:"maxDownPayment" mapstructure:"maxDownPayment"`
	MaxLoanAmount        float64 `yaml:"maxLoanAmount" mapstructure:"maxLoanAmount"`
}

// DefaultLimits returns the bounds used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxPurchasePrice:     constants.MaxPurchasePrice,
		MaxRenovationCost:    constants.MaxRenovationCost,
		MaxMonthlyRent:       constants.MaxMonthlyRent,
		MaxMonthlyCondoFees:  constants.MaxMonthlyCondoFees,
		MaxAnnualPropertyTax: constants.MaxAnnualPropertyTax,
		MaxDownPayment:       constants.MaxDownPayment,
		MaxLoanAmount:        constants.MaxLoanAmount,
	}
}

// WithDefaults fills unset (zero or negative) bounds from DefaultLimits.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&l.MaxPurchasePrice, d.MaxPurchasePrice)
	fill(&l.MaxRenovationCost, d.MaxRenovationCost)
	fill(&l.MaxMonthlyRent, d.MaxMonthlyRent)
	fill(&l.MaxMonthlyCondoFees, d.MaxMonthlyCondoFees)
	fill(&l.MaxAnnualPropertyTax, d.MaxAnnualPropertyTax)
	fill(&l.MaxDownPayment, d.MaxDownPayment)
	fill(&l.MaxLoanAmount, d.MaxLoanAmount)
	return l
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is returned by ValidateProperty when one or more fields are out
// of range.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Message)
	}
	return "invalid property: " + strings.Join(parts, "; ")
}

// rangedInput mirrors metrics.PropertyInput with the fixed ranges.
type rangedInput struct {
	PurchasePrice       float64 `json:"purchasePrice" validate:"gte=0"`
	RenovationCost      float64 `json:"renovationCost" validate:"gte=0"`
	MonthlyRent         float64 `json:"monthlyRent" validate:"gte=0"`
	MonthlyCondoFees    float64 `json:"monthlyCondoFees" validate:"gte=0"`
	AnnualPropertyTax   float64 `json:"annualPropertyTax" validate:"gte=0"`
	DownPayment         float64 `json:"downPayment" validate:"gte=0"`
	LoanAmount          float64 `json:"loanAmount" validate:"gte=0"`
	AnnualInterestRate  float64 `json:"annualInterestRate" validate:"gte=0,lte=10"`
	AnnualInsuranceRate float64 `json:"annualInsuranceRate" validate:"gte=0,lte=4"`
	LoanTermYears       int     `json:"loanTermYears" validate:"gte=1,lte=30"`
}

// ValidateProperty checks that every field of input is inside its allowed
// range. It returns FieldErrors listing each violation, or nil.
func ValidateProperty(input metrics.PropertyInput, limits Limits) error {
	limits = limits.WithDefaults()
	var problems FieldErrors

	err := validate.Struct(rangedInput(input))
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		for _, fe := range validationErrors {
			problems = append(problems, FieldError{Field: fe.Field(), Message: describe(fe.Field(), fe.Tag(), fe.Param())})
		}
	}

	maxima := []struct {
		field string
		value float64
		max   float64
	}{
		{"purchasePrice", input.PurchasePrice, limits.MaxPurchasePrice},
		{"renovationCost", input.RenovationCost, limits.MaxRenovationCost},
		{"monthlyRent", input.MonthlyRent, limits.MaxMonthlyRent},
		{"monthlyCondoFees", input.MonthlyCondoFees, limits.MaxMonthlyCondoFees},
		{"annualPropertyTax", input.AnnualPropertyTax, limits.MaxAnnualPropertyTax},
		{"downPayment", input.DownPayment, limits.MaxDownPayment},
		{"loanAmount", input.LoanAmount, limits.MaxLoanAmount},
	}
	for _, m := range maxima {
		param := strconv.FormatFloat(m.max, 'f', -1, 64)
		if err := validate.Var(m.value, "lte="+param); err != nil {
			problems = append(problems, FieldError{Field: m.field, Message: describe(m.field, "lte", param)})
		}
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}

func describe(field, tag, param string) string {
	switch tag {
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must not exceed %s", field, param)
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, tag)
	}
}
