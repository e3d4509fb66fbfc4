// Package constants provides shared constants for the rental-compare application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// NotaryFeeRate approximates notary fees as a fixed share of the purchase price
	NotaryFeeRate = 0.08

	// AcquisitionCostFloor is the smallest denominator used for yield ratios, in
	// currency units. A property that costs nothing has no meaningful yield.
	AcquisitionCostFloor = 1.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Input limits applied by the collaborator layer before reaching the calculator.
const (
	MaxPurchasePrice      = 4000000.0
	MaxRenovationCost     = 200000.0
	MaxMonthlyRent        = 5000.0
	MaxMonthlyCondoFees   = 1000.0
	MaxAnnualPropertyTax  = 5000.0
	MaxDownPayment        = 4000000.0
	MaxLoanAmount         = 4000000.0
	MaxInterestRate       = 10.0
	MaxInsuranceRate      = 4.0
	MinLoanTermYears      = 1
	MaxLoanTermYears      = 30
	DefaultLoanTermYears  = 20
	DefaultCurrencySymbol = "€"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultSessionTTL is how long an idle browser session keeps its portfolio
	DefaultSessionTTL = "30m"

	// DefaultRateLimitRequests is the number of API requests allowed per window per client
	DefaultRateLimitRequests = 120

	// DefaultRateLimitWindow is the refill window for the API rate limiter
	DefaultRateLimitWindow = "1m"

	// SessionCookieName names the cookie that carries the session identifier
	SessionCookieName = "rc_session"
)
