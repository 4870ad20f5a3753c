package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amirasaad/atm/internal/fixtures/mocks"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedClock = WithClock(func() time.Time {
	return time.Date(2026, 1, 31, 23, 59, 58, 0, time.UTC)
})

func newService(t *testing.T, dir string) (*mocks.MockReportRepository, *Service) {
	repo := mocks.NewMockReportRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return repo, NewService(&mocks.UnitOfWork{Reports: repo}, dir, nil, logger, fixedClock)
}

func TestWriteTransactionalBalances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	repo, svc := newService(t, dir)
	repo.On("HighestTransactionalBalances", mock.Anything).Return([]atm.HighestBalanceRow{
		{ClientID: 1, ClientSurname: "Nkosi", AccountNumber: "1002", AccountDescription: "Cheque Account",
			DisplayBalance: decimal.RequireFromString("10250")},
		{ClientID: 2, ClientSurname: "Dlamini", AccountNumber: "2001", AccountDescription: "Savings Account",
			DisplayBalance: decimal.RequireFromString("-12.5")},
	}, nil).Once()

	path, err := svc.WriteTransactionalBalances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transactional_account_balance_report_20260131_235958.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Client Id, Client Surname, Client Account Number, Account Description, Display Balance\n"+
			"1, Nkosi, 1002, Cheque Account, 10250.000\n"+
			"2, Dlamini, 2001, Savings Account, -12.500\n",
		string(content))
}

func TestWriteFinancialPositions(t *testing.T) {
	dir := t.TempDir()
	repo, svc := newService(t, dir)
	repo.On("ClientFinancialPositions", mock.Anything).Return([]atm.FinancialPositionRow{
		{Client: "Mr T Nkosi", LoanBalance: decimal.RequireFromString("1500"),
			TransactionalBalance: decimal.RequireFromString("1000")},
	}, nil).Once()

	path, err := svc.WriteFinancialPositions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "client_aggregate_financial_position_report_20260131_235958.txt", filepath.Base(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Client, Loan Balance, Transactional Balance, Net Position\n"+
			"Mr T Nkosi, 1500.000, 1000.000, -500.000\n",
		string(content))
}

func TestWriteAll(t *testing.T) {
	t.Run("writes both", func(t *testing.T) {
		dir := t.TempDir()
		repo, svc := newService(t, dir)
		repo.On("HighestTransactionalBalances", mock.Anything).Return([]atm.HighestBalanceRow{}, nil).Once()
		repo.On("ClientFinancialPositions", mock.Anything).Return([]atm.FinancialPositionRow{}, nil).Once()

		require.NoError(t, svc.WriteAll(context.Background()))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		repo, svc := newService(t, t.TempDir())
		boom := errors.New("db down")
		repo.On("HighestTransactionalBalances", mock.Anything).Return(nil, boom).Once()

		assert.ErrorIs(t, svc.WriteAll(context.Background()), boom)
		repo.AssertNotCalled(t, "ClientFinancialPositions", mock.Anything)
	})
}
