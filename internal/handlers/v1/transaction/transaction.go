package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	AccountID   *string `json:"accountID,omitempty" doc:"Linked account UUID, absent for unlinked transactions"`
	CategoryID  *string `json:"categoryID,omitempty" doc:"Category UUID"`
	Amount      string  `json:"amount" doc:"Decimal amount"`
	Type        string  `json:"type" doc:"Entry type: income or expense"`
	OccurredOn  string  `json:"occurredOn" doc:"RFC3339 date the transaction occurred"`
	Description string  `json:"description" doc:"Transaction description"`
	Method      string  `json:"method" doc:"Payment method"`
	CreatedAt   string  `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx *service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		AccountID:   uuidString(tx.AccountID),
		CategoryID:  uuidString(tx.CategoryID),
		Amount:      tx.Amount.String(),
		Type:        tx.Type.String(),
		OccurredOn:  tx.OccurredOn.Format(time.RFC3339),
		Description: tx.Description,
		Method:      tx.Method.String(),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// parseOptionalUUID treats the empty string as absent.
func parseOptionalUUID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return &id, nil
}
