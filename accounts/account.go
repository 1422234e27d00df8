package accounts

import (
	"time"

	"github.com/google/uuid"
)

// Account is a user-visible container of holdings, valued in one currency.
type Account struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
}

// NewAccount creates an account with a fresh id.
func NewAccount(name, currency string) *Account {
	return &Account{
		ID:       uuid.New(),
		Name:     name,
		Currency: currency,
	}
}

// Holding is a position in a single security.
type Holding struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}

// Balance is the account's total value on a calendar day.
type Balance struct {
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Currency string    `json:"currency"`
}
