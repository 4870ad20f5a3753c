package repository

import (
	"context"
	"errors"
	"reflect"
)

// ErrUnsupportedRepository is returned by GetRepository for an unknown repository type.
var ErrUnsupportedRepository = errors.New("unsupported repository type")

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs the given function in a transaction boundary, providing a UnitOfWork whose
// repositories share the transaction. Repositories obtained inside Do lock the rows they read.
// GetRepository provides access by interface type, the typed accessors are shortcuts:
//
//	repoAny, err := uow.GetRepository(reflect.TypeOf((*AccountRepository)(nil)).Elem())
//	repo := repoAny.(AccountRepository)
type UnitOfWork interface {
	// Do executes fn within a transaction boundary.
	// If fn returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested type, bound to the current session.
	GetRepository(repoType reflect.Type) (any, error)

	ClientRepository() (ClientRepository, error)
	AccountRepository() (AccountRepository, error)
	CreditCardLimitRepository() (CreditCardLimitRepository, error)
	AtmRepository() (AtmRepository, error)
	AllocationRepository() (AllocationRepository, error)
	CurrencyRateRepository() (CurrencyRateRepository, error)
	ReportRepository() (ReportRepository, error)
}
