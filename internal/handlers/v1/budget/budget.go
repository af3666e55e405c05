// Package budget implements the HTTP endpoints for budget management.
package budget

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/storage/budget"
)

// Budget is the wire representation of a spending budget.
type Budget struct {
	ID         string `json:"id" doc:"Budget UUID"`
	CategoryID string `json:"categoryId" doc:"Category the ceiling applies to"`
	Ceiling    string `json:"ceiling" doc:"Maximum expense total per period"`
	Period     string `json:"period" doc:"Budget period (weekly, monthly, yearly)"`
	CreatedAt  string `json:"createdAt"`
}

func fromStorage(row *budget.Budget) Budget {
	return Budget{
		ID:         row.ID.String(),
		CategoryID: row.CategoryID.String(),
		Ceiling:    row.Ceiling.String(),
		Period:     row.Period.String(),
		CreatedAt:  row.CreatedAt.Format(time.RFC3339),
	}
}
