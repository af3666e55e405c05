package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
)

// CategoryService handles category business logic.
type CategoryService struct {
	storage *storage.Storage
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

func (s *CategoryService) CreateCategory(ctx context.Context, ownerID uuid.UUID, name string, kind category.Kind) (*category.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ledger.ValidationError{Field: "name", Message: "is required"}
	}
	return s.storage.Categories.Insert(ctx, &category.CategoryCreate{
		OwnerID: ownerID,
		Name:    name,
		Kind:    kind,
	})
}

func (s *CategoryService) GetCategory(ctx context.Context, ownerID, id uuid.UUID) (*category.Category, error) {
	row, err := s.storage.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil || row.OwnerID != ownerID {
		return nil, fmt.Errorf("category %s: %w", id, ledger.ErrNotFound)
	}
	return row, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error) {
	return s.storage.Categories.ListByOwner(ctx, ownerID)
}

// DeleteCategory removes a category. Transactions keep running with a nil
// category link; the database clears it on delete.
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.storage.Categories.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("category %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}
