package account

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID              string `json:"id" doc:"Account UUID"`
	Name            string `json:"name" doc:"Account name"`
	Type            string `json:"type" doc:"Account type: checking, savings, credit, investment or other"`
	Number          string `json:"number,omitempty" doc:"External account number"`
	Balance         string `json:"balance" doc:"Current decimal balance"`
	StartingBalance string `json:"startingBalance" doc:"Balance the account opened with"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(a *service.Account) Account {
	return Account{
		ID:              a.ID.String(),
		Name:            a.Name,
		Type:            a.Type.String(),
		Number:          a.Number,
		Balance:         a.Balance.String(),
		StartingBalance: a.StartingBalance.String(),
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
}
