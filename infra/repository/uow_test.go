package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUoW_TypedAccessors(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	clients, err := uow.ClientRepository()
	require.NoError(t, err)
	assert.IsType(t, &clientRepository{}, clients)

	accounts, err := uow.AccountRepository()
	require.NoError(t, err)
	assert.False(t, accounts.(*accountRepository).lock)

	_, err = uow.CreditCardLimitRepository()
	require.NoError(t, err)
	_, err = uow.AtmRepository()
	require.NoError(t, err)
	_, err = uow.AllocationRepository()
	require.NoError(t, err)
	_, err = uow.CurrencyRateRepository()
	require.NoError(t, err)
	_, err = uow.ReportRepository()
	require.NoError(t, err)
}

func TestUoW_GetRepository_Unsupported(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)

	_, err := uow.GetRepository(reflect.TypeOf(42))
	assert.ErrorIs(t, err, repository.ErrUnsupportedRepository)
}

func TestUoW_Do_LocksInsideTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF aa`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(allocationColumns).AddRow(10, 1, 1, "100.00", "N", 3))
	mock.ExpectExec(allocationUpdate).
		WithArgs(2, 10, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(tx repository.UnitOfWork) error {
		accounts, err := tx.AccountRepository()
		require.NoError(t, err)
		assert.True(t, accounts.(*accountRepository).lock)

		allocations, err := tx.AllocationRepository()
		if err != nil {
			return err
		}
		allocs, err := allocations.ListByAtm(context.Background(), 1)
		if err != nil {
			return err
		}
		require.Len(t, allocs, 1)
		return allocations.UpdateCounts(context.Background(), 1, []atm.AllocationUpdate{
			{AllocationID: allocs[0].ID, DenominationID: 1, RemainingCount: 2},
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_Do_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("balance write failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error { return boom })
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
