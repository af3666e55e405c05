package category

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/storage/category"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, ownerID uuid.UUID, name string, kind category.Kind) (*category.Category, error) {
	args := m.Called(ctx, ownerID, name, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func newCreateTestAPI(t *testing.T, svc categoryCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateCategoryHandler(svc).Register(api)
	return api
}

func ownerHeader(ownerID uuid.UUID) string {
	return "X-Owner-ID: " + ownerID.String()
}

func TestHTTP_CreateCategory_Success(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	created := &category.Category{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   ownerID,
		Name:      "Groceries",
		Kind:      category.KindExpense,
		CreatedAt: time.Now().UTC(),
	}

	mockSvc := new(mockCategoryService)
	mockSvc.On("CreateCategory", mock.Anything, ownerID, "Groceries", category.KindExpense).
		Return(created, nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/category",
		ownerHeader(ownerID),
		CreateCategoryBody{Name: "Groceries", Kind: "expense"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Category
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.Equal(t, "expense", body.Kind)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateCategory_UnknownKindRejected(t *testing.T) {
	mockSvc := new(mockCategoryService)

	// The enum tag rejects this before the handler runs.
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/category",
		ownerHeader(uuid.Must(uuid.NewV4())),
		map[string]any{"name": "Groceries", "kind": "asset"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateCategory")
}
