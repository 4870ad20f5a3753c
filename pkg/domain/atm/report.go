package atm

import "github.com/shopspring/decimal"

// HighestBalanceRow is one line of the highest transactional balance report.
type HighestBalanceRow struct {
	ClientID           int64
	ClientSurname      string
	AccountNumber      string
	AccountDescription string
	DisplayBalance     decimal.Decimal
}

// FinancialPositionRow is one line of the aggregate financial position report.
type FinancialPositionRow struct {
	Client               string
	LoanBalance          decimal.Decimal
	TransactionalBalance decimal.Decimal
}

// NetPosition returns the transactional balance minus the loan balance.
func (r FinancialPositionRow) NetPosition() decimal.Decimal {
	return r.TransactionalBalance.Sub(r.LoanBalance)
}
