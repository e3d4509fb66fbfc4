// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/rental-compare/internal/portfolio"
)

// FindRow finds a row by property name in the rows slice.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []portfolio.Row, name string) *portfolio.Row {
	for i := range rows {
		if rows[i].Name == name {
			return &rows[i]
		}
	}
	return nil
}
