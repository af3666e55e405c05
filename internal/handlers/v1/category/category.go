package category

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/storage/category"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name"`
	Kind      string `json:"kind" doc:"Category kind: income or expense"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromStorage(c *category.Category) Category {
	return Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		Kind:      c.Kind.String(),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
