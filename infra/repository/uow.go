package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/atm/pkg/repository"
	"gorm.io/gorm"
)

type constructor func(db *gorm.DB, lock bool) any

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction and lock the rows they read for update.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]constructor
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]constructor{
			typeOf[repository.ClientRepository](): func(db *gorm.DB, _ bool) any {
				return NewClientRepository(db)
			},
			typeOf[repository.AccountRepository](): func(db *gorm.DB, lock bool) any {
				return NewAccountRepository(db, lock)
			},
			typeOf[repository.CreditCardLimitRepository](): func(db *gorm.DB, _ bool) any {
				return NewCreditCardLimitRepository(db)
			},
			typeOf[repository.AtmRepository](): func(db *gorm.DB, _ bool) any {
				return NewAtmRepository(db)
			},
			typeOf[repository.AllocationRepository](): func(db *gorm.DB, lock bool) any {
				return NewAllocationRepository(db, lock)
			},
			typeOf[repository.CurrencyRateRepository](): func(db *gorm.DB, _ bool) any {
				return NewCurrencyRateRepository(db)
			},
			typeOf[repository.ReportRepository](): func(db *gorm.DB, _ bool) any {
				return NewReportRepository(db)
			},
		},
	}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository returns the repository registered for repoType, bound to the transaction when inside Do.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	ctor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("%w: %v", repository.ErrUnsupportedRepository, repoType)
	}
	if u.tx != nil {
		return ctor(u.tx, true), nil
	}
	return ctor(u.db, false), nil
}

func get[T any](u *UoW) (T, error) {
	var zero T
	repoAny, err := u.GetRepository(typeOf[T]())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %v", repository.ErrUnsupportedRepository, typeOf[T]())
	}
	return repo, nil
}

func (u *UoW) ClientRepository() (repository.ClientRepository, error) {
	return get[repository.ClientRepository](u)
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return get[repository.AccountRepository](u)
}

func (u *UoW) CreditCardLimitRepository() (repository.CreditCardLimitRepository, error) {
	return get[repository.CreditCardLimitRepository](u)
}

func (u *UoW) AtmRepository() (repository.AtmRepository, error) {
	return get[repository.AtmRepository](u)
}

func (u *UoW) AllocationRepository() (repository.AllocationRepository, error) {
	return get[repository.AllocationRepository](u)
}

func (u *UoW) CurrencyRateRepository() (repository.CurrencyRateRepository, error) {
	return get[repository.CurrencyRateRepository](u)
}

func (u *UoW) ReportRepository() (repository.ReportRepository, error) {
	return get[repository.ReportRepository](u)
}
