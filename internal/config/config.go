// Package config defines the data structures related to configuration and
// includes functions for loading and checking the portfolio file.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/rental-compare/internal/portfolio"
	"github.com/iwvelando/rental-compare/pkg/constants"
	"github.com/iwvelando/rental-compare/pkg/metrics"
	"github.com/iwvelando/rental-compare/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override file settings, e.g.
// RENTAL_COMPARE_OUTPUT_FORMAT=csv.
const EnvPrefix = "RENTAL_COMPARE"

// Configuration holds all configuration for rental-compare.
type Configuration struct {
	Logging    LoggingConfig     `yaml:"logging,omitempty"`
	Output     OutputConfig      `yaml:"output,omitempty"`
	Currency   CurrencyConfig    `yaml:"currency,omitempty"`
	Limits     validation.Limits `yaml:"limits,omitempty"`
	Properties []Property        `yaml:"properties"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// CurrencyConfig holds the display symbol. All amounts share one currency.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol,omitempty"`
}

// Property is one named property of the portfolio file.
type Property struct {
	Name                  string `yaml:"name"`
	metrics.PropertyInput `yaml:",inline" mapstructure:",squash"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("currency.symbol", constants.DefaultCurrencySymbol)

	// Every key needs a default so AutomaticEnv can override it.
	limits := validation.DefaultLimits()
	v.SetDefault("limits.maxPurchasePrice", limits.MaxPurchasePrice)
	v.SetDefault("limits.maxRenovationCost", limits.MaxRenovationCost)
	v.SetDefault("limits.maxMonthlyRent", limits.MaxMonthlyRent)
	v.SetDefault("limits.maxMonthlyCondoFees", limits.MaxMonthlyCondoFees)
	v.SetDefault("limits.maxAnnualPropertyTax", limits.MaxAnnualPropertyTax)
	v.SetDefault("limits.maxDownPayment", limits.MaxDownPayment)
	v.SetDefault("limits.maxLoanAmount", limits.MaxLoanAmount)
	return v
}

// loanTerms tells an omitted loanTermYears apart from an explicit zero.
type loanTerms struct {
	Properties []struct {
		LoanTermYears *int `mapstructure:"loanTermYears"`
	} `mapstructure:"properties"`
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	var terms loanTerms
	if err := v.Unmarshal(&terms); err != nil {
		return nil, fmt.Errorf("unable to decode loan terms, %w", err)
	}
	for i := range configuration.Properties {
		if i < len(terms.Properties) && terms.Properties[i].LoanTermYears == nil {
			configuration.Properties[i].LoanTermYears = constants.DefaultLoanTermYears
		}
	}
	configuration.Limits = configuration.Limits.WithDefaults()
	if configuration.Currency.Symbol == "" {
		configuration.Currency.Symbol = constants.DefaultCurrencySymbol
	}

	return &configuration, nil
}

// Validate checks every property against the configured limits and returns the
// first failure.
func (c *Configuration) Validate() error {
	for i, property := range c.Properties {
		if err := validation.ValidateProperty(property.PropertyInput, c.Limits); err != nil {
			return fmt.Errorf("property %d (%s): %w", i+1, displayName(property, i), err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings that do not prevent the comparison from running.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	seen := make(map[string]int)

	for i, property := range c.Properties {
		name := displayName(property, i)
		if strings.TrimSpace(property.Name) == "" {
			warnings = append(warnings, fmt.Sprintf("Property %d has no name; showing it as '%s'", i+1, name))
		} else if first, ok := seen[name]; ok {
			warnings = append(warnings, fmt.Sprintf("Property '%s' is listed more than once (entries %d and %d)",
				name, first+1, i+1))
		} else {
			seen[name] = i
		}

		m := metrics.ComputeMetrics(property.PropertyInput)
		funded := property.DownPayment + property.LoanAmount
		if property.DownPayment > 0 && funded+constants.CurrencyTolerance < m.TotalAcquisitionCost {
			warnings = append(warnings, fmt.Sprintf("Property '%s' down payment and loan (%.2f) do not cover the total acquisition cost (%.2f)",
				name, funded, m.TotalAcquisitionCost))
		}
		if property.LoanAmount > m.TotalAcquisitionCost {
			warnings = append(warnings, fmt.Sprintf("Property '%s' loan amount (%.2f) exceeds the total acquisition cost (%.2f)",
				name, property.LoanAmount, m.TotalAcquisitionCost))
		}
		if property.MonthlyRent == 0 {
			warnings = append(warnings, fmt.Sprintf("Property '%s' has no rent; yields will be zero", name))
		}
	}

	return warnings
}

// ToPortfolio builds a portfolio holding every configured property, in file
// order.
func (c *Configuration) ToPortfolio() *portfolio.Portfolio {
	p := portfolio.New()
	for i, property := range c.Properties {
		p.Add(displayName(property, i), property.PropertyInput)
	}
	return p
}

func displayName(property Property, index int) string {
	if name := strings.TrimSpace(property.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Property %d", index+1)
}
