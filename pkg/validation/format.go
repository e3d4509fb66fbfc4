// Package validation checks user-supplied settings and property inputs before
// they reach the calculator.
package validation

import (
	"fmt"

	"github.com/iwvelando/rental-compare/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	rule := fmt.Sprintf("required,oneof=%s %s", constants.OutputFormatPretty, constants.OutputFormatCSV)
	if err := validate.Var(format, rule); err != nil {
		return fmt.Errorf("expected output format of %s or %s, got %q",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}
