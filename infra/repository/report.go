package repository

import (
	"context"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/repository"
	"gorm.io/gorm"
)

// highestBalanceQuery picks each client's transactional account with the highest balance.
const highestBalanceQuery = `SELECT DISTINCT ON (c.client_id)
c.client_id, COALESCE(c.surname, '') AS client_surname, ca.client_account_number AS account_number,
t.description AS account_description, ca.display_balance
FROM client c
JOIN client_account ca ON ca.client_id = c.client_id
JOIN account_type t ON t.account_type_code = ca.account_type_code
WHERE t.transactional = TRUE AND ca.display_balance IS NOT NULL
ORDER BY c.client_id, ca.display_balance DESC, ca.client_account_number`

// financialPositionQuery totals each client's loan and transactional balances.
const financialPositionQuery = `SELECT
CONCAT_WS(' ', c.title, c.name, c.surname) AS client,
COALESCE(SUM(CASE WHEN ca.account_type_code IN ? THEN ca.display_balance END), 0) AS loan_balance,
COALESCE(SUM(CASE WHEN t.transactional THEN ca.display_balance END), 0) AS transactional_balance
FROM client c
LEFT JOIN client_account ca ON ca.client_id = c.client_id
LEFT JOIN account_type t ON t.account_type_code = ca.account_type_code
GROUP BY c.client_id, c.title, c.name, c.surname
ORDER BY c.client_id`

var loanAccountTypes = []string{atm.AccountTypeHomeLoan, atm.AccountTypePersonalLoan}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) HighestTransactionalBalances(ctx context.Context) ([]atm.HighestBalanceRow, error) {
	rows := make([]atm.HighestBalanceRow, 0)
	if err := r.db.WithContext(ctx).Raw(highestBalanceQuery).Scan(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return rows, nil
}

func (r *reportRepository) ClientFinancialPositions(ctx context.Context) ([]atm.FinancialPositionRow, error) {
	rows := make([]atm.FinancialPositionRow, 0)
	if err := r.db.WithContext(ctx).Raw(financialPositionQuery, loanAccountTypes).Scan(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return rows, nil
}
