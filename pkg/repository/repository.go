package repository

import (
	"context"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/shopspring/decimal"
)

// ClientRepository defines the interface for client data access operations.
type ClientRepository interface {
	// Get returns domain.ErrNotFound when no client has the id.
	Get(ctx context.Context, id int64) (*atm.Client, error)
}

// AccountRepository defines the interface for client account data access operations.
type AccountRepository interface {
	ListTransactional(ctx context.Context, clientID int64) ([]atm.Account, error)
	ListByType(ctx context.Context, clientID int64, typeCode string) ([]atm.Account, error)
	// GetTransactional returns domain.ErrNotFound when the client holds no transactional account with the number.
	GetTransactional(ctx context.Context, clientID int64, number string) (*atm.Account, error)
	UpdateBalance(ctx context.Context, clientID int64, number string, balance decimal.Decimal) error
}

// CreditCardLimitRepository defines the interface for credit card limit lookups.
type CreditCardLimitRepository interface {
	// Get returns domain.ErrNotFound when the account has no credit card limit.
	Get(ctx context.Context, accountNumber string) (decimal.Decimal, error)
}

// AtmRepository defines the interface for ATM registry lookups.
type AtmRepository interface {
	Exists(ctx context.Context, atmID int64) (bool, error)
}

// AllocationRepository defines the interface for ATM note inventory access.
type AllocationRepository interface {
	ListByAtm(ctx context.Context, atmID int64) ([]atm.Allocation, error)
	UpdateCounts(ctx context.Context, atmID int64, updates []atm.AllocationUpdate) error
}

// CurrencyRateRepository defines the interface for the stored conversion rates.
type CurrencyRateRepository interface {
	List(ctx context.Context) ([]atm.CurrencyRate, error)
}

// ReportRepository defines the interface for month-end reporting queries.
type ReportRepository interface {
	HighestTransactionalBalances(ctx context.Context) ([]atm.HighestBalanceRow, error)
	ClientFinancialPositions(ctx context.Context) ([]atm.FinancialPositionRow, error)
}
