// Package mocks provides testify mocks of the repository, cache and event bus contracts.
package mocks

import (
	"context"
	"reflect"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// T is the subset of testing.TB the constructors need.
type T interface {
	mock.TestingT
	Cleanup(func())
}

type MockClientRepository struct{ mock.Mock }

func NewMockClientRepository(t T) *MockClientRepository {
	m := &MockClientRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClientRepository) Get(ctx context.Context, id int64) (*atm.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*atm.Client)
	return c, args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func NewMockAccountRepository(t T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) ListTransactional(ctx context.Context, clientID int64) ([]atm.Account, error) {
	args := m.Called(ctx, clientID)
	accs, _ := args.Get(0).([]atm.Account)
	return accs, args.Error(1)
}

func (m *MockAccountRepository) ListByType(ctx context.Context, clientID int64, typeCode string) ([]atm.Account, error) {
	args := m.Called(ctx, clientID, typeCode)
	accs, _ := args.Get(0).([]atm.Account)
	return accs, args.Error(1)
}

func (m *MockAccountRepository) GetTransactional(ctx context.Context, clientID int64, number string) (*atm.Account, error) {
	args := m.Called(ctx, clientID, number)
	acc, _ := args.Get(0).(*atm.Account)
	return acc, args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(
	ctx context.Context,
	clientID int64,
	number string,
	balance decimal.Decimal,
) error {
	return m.Called(ctx, clientID, number, balance).Error(0)
}

type MockCreditCardLimitRepository struct{ mock.Mock }

func NewMockCreditCardLimitRepository(t T) *MockCreditCardLimitRepository {
	m := &MockCreditCardLimitRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCreditCardLimitRepository) Get(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountNumber)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

type MockAtmRepository struct{ mock.Mock }

func NewMockAtmRepository(t T) *MockAtmRepository {
	m := &MockAtmRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAtmRepository) Exists(ctx context.Context, atmID int64) (bool, error) {
	args := m.Called(ctx, atmID)
	return args.Bool(0), args.Error(1)
}

type MockAllocationRepository struct{ mock.Mock }

func NewMockAllocationRepository(t T) *MockAllocationRepository {
	m := &MockAllocationRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAllocationRepository) ListByAtm(ctx context.Context, atmID int64) ([]atm.Allocation, error) {
	args := m.Called(ctx, atmID)
	allocs, _ := args.Get(0).([]atm.Allocation)
	return allocs, args.Error(1)
}

func (m *MockAllocationRepository) UpdateCounts(ctx context.Context, atmID int64, updates []atm.AllocationUpdate) error {
	return m.Called(ctx, atmID, updates).Error(0)
}

type MockCurrencyRateRepository struct{ mock.Mock }

func NewMockCurrencyRateRepository(t T) *MockCurrencyRateRepository {
	m := &MockCurrencyRateRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCurrencyRateRepository) List(ctx context.Context) ([]atm.CurrencyRate, error) {
	args := m.Called(ctx)
	rates, _ := args.Get(0).([]atm.CurrencyRate)
	return rates, args.Error(1)
}

type MockReportRepository struct{ mock.Mock }

func NewMockReportRepository(t T) *MockReportRepository {
	m := &MockReportRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReportRepository) HighestTransactionalBalances(ctx context.Context) ([]atm.HighestBalanceRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]atm.HighestBalanceRow)
	return rows, args.Error(1)
}

func (m *MockReportRepository) ClientFinancialPositions(ctx context.Context) ([]atm.FinancialPositionRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]atm.FinancialPositionRow)
	return rows, args.Error(1)
}

// UnitOfWork is a fake unit of work handing out the configured repositories.
// Do runs fn directly and returns CommitErr when fn succeeds.
type UnitOfWork struct {
	Clients     repository.ClientRepository
	Accounts    repository.AccountRepository
	Limits      repository.CreditCardLimitRepository
	Atms        repository.AtmRepository
	Allocations repository.AllocationRepository
	Rates       repository.CurrencyRateRepository
	Reports     repository.ReportRepository

	CommitErr error
	// Calls counts Do invocations.
	Calls int
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.Calls++
	if err := fn(u); err != nil {
		return err
	}
	return u.CommitErr
}

func (u *UnitOfWork) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*repository.ClientRepository)(nil)).Elem():
		return u.Clients, nil
	case reflect.TypeOf((*repository.AccountRepository)(nil)).Elem():
		return u.Accounts, nil
	case reflect.TypeOf((*repository.CreditCardLimitRepository)(nil)).Elem():
		return u.Limits, nil
	case reflect.TypeOf((*repository.AtmRepository)(nil)).Elem():
		return u.Atms, nil
	case reflect.TypeOf((*repository.AllocationRepository)(nil)).Elem():
		return u.Allocations, nil
	case reflect.TypeOf((*repository.CurrencyRateRepository)(nil)).Elem():
		return u.Rates, nil
	case reflect.TypeOf((*repository.ReportRepository)(nil)).Elem():
		return u.Reports, nil
	}
	return nil, repository.ErrUnsupportedRepository
}

func (u *UnitOfWork) ClientRepository() (repository.ClientRepository, error) { return u.Clients, nil }
func (u *UnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	return u.Accounts, nil
}
func (u *UnitOfWork) CreditCardLimitRepository() (repository.CreditCardLimitRepository, error) {
	return u.Limits, nil
}
func (u *UnitOfWork) AtmRepository() (repository.AtmRepository, error) { return u.Atms, nil }
func (u *UnitOfWork) AllocationRepository() (repository.AllocationRepository, error) {
	return u.Allocations, nil
}
func (u *UnitOfWork) CurrencyRateRepository() (repository.CurrencyRateRepository, error) {
	return u.Rates, nil
}
func (u *UnitOfWork) ReportRepository() (repository.ReportRepository, error) { return u.Reports, nil }
