package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

const dateWindowYears = 10

var maxAmount = decimal.NewFromInt(1_000_000)

func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if amount.GreaterThan(maxAmount) {
		return &ValidationError{Field: "amount", Message: "must not exceed 1000000"}
	}
	if !amount.Equal(amount.Round(2)) {
		return &ValidationError{Field: "amount", Message: "must have at most 2 decimal places"}
	}
	return nil
}

func validateOccurredOn(d time.Time) error {
	if d.IsZero() {
		return &ValidationError{Field: "occurredOn", Message: "is required"}
	}
	now := time.Now()
	if d.Before(now.AddDate(-dateWindowYears, 0, 0)) || d.After(now.AddDate(dateWindowYears, 0, 0)) {
		return &ValidationError{Field: "occurredOn", Message: "must be within 10 years of today"}
	}
	return nil
}

func validateType(t transaction.EntryType) error {
	if t != transaction.EntryIncome && t != transaction.EntryExpense {
		return &ValidationError{Field: "type", Message: "must be income or expense"}
	}
	return nil
}

func validateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return &ValidationError{Field: "description", Message: "is required"}
	}
	return nil
}

func validatePost(in *PostInput) error {
	if err := validateType(in.Type); err != nil {
		return err
	}
	if err := validateAmount(in.Amount); err != nil {
		return err
	}
	if err := validateOccurredOn(in.OccurredOn); err != nil {
		return err
	}
	return validateDescription(in.Description)
}

func validateUpdate(next *transaction.TransactionUpdate) error {
	if err := validateType(next.Type); err != nil {
		return err
	}
	if err := validateAmount(next.Amount); err != nil {
		return err
	}
	if err := validateOccurredOn(next.OccurredOn); err != nil {
		return err
	}
	return validateDescription(next.Description)
}
