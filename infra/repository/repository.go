package repository

import (
	"context"
	"fmt"

	"github.com/amirasaad/atm/pkg/domain"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client types whose accounts are shown at the ATM: individuals and non-residents.
var presentableClientTypes = []string{"I", "N"}

// forUpdate appends a row lock on alias when the repository runs inside a transaction.
func forUpdate(query string, lock bool, alias string) string {
	if !lock {
		return query
	}
	return query + " FOR UPDATE OF " + alias
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Get(ctx context.Context, id int64) (*atm.Client, error) {
	var c Client
	if err := r.db.WithContext(ctx).First(&c, "client_id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapClient(&c), nil
}

const accountSelect = `SELECT ca.client_account_number, ca.client_id, ca.account_type_code,
t.description, t.transactional, ca.currency_code, ca.display_balance
FROM client_account ca
JOIN account_type t ON t.account_type_code = ca.account_type_code`

const clientTypeJoin = `
JOIN client c ON c.client_id = ca.client_id
JOIN client_sub_type cst ON cst.client_sub_type_code = c.client_sub_type_code
JOIN client_type ct ON ct.client_type_code = cst.client_type_code`

var (
	transactionalAccountsQuery = accountSelect + `
WHERE ca.client_id = ? AND t.transactional = TRUE
ORDER BY ca.client_account_number`

	accountsByTypeQuery = accountSelect + clientTypeJoin + `
WHERE ca.client_id = ? AND ca.account_type_code = ? AND ct.client_type_code IN ?
ORDER BY ca.client_account_number`

	transactionalAccountQuery = accountSelect + clientTypeJoin + `
WHERE ca.client_id = ? AND ca.client_account_number = ? AND t.transactional = TRUE
AND ct.client_type_code IN ?`
)

type accountRepository struct {
	db   *gorm.DB
	lock bool
}

// NewAccountRepository creates an account repository. With lock set, GetTransactional
// locks the account row until the surrounding transaction ends.
func NewAccountRepository(db *gorm.DB, lock bool) repository.AccountRepository {
	return &accountRepository{db: db, lock: lock}
}

func (r *accountRepository) ListTransactional(ctx context.Context, clientID int64) ([]atm.Account, error) {
	var rows []accountRow
	if err := r.db.WithContext(ctx).Raw(transactionalAccountsQuery, clientID).Scan(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccounts(rows), nil
}

func (r *accountRepository) ListByType(ctx context.Context, clientID int64, typeCode string) ([]atm.Account, error) {
	var rows []accountRow
	err := r.db.WithContext(ctx).
		Raw(accountsByTypeQuery, clientID, typeCode, presentableClientTypes).
		Scan(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccounts(rows), nil
}

func (r *accountRepository) GetTransactional(ctx context.Context, clientID int64, number string) (*atm.Account, error) {
	var row accountRow
	res := r.db.WithContext(ctx).
		Raw(forUpdate(transactionalAccountQuery, r.lock, "ca"), clientID, number, presentableClientTypes).
		Scan(&row)
	if res.Error != nil {
		return nil, MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	acc := mapAccount(row)
	return &acc, nil
}

func (r *accountRepository) UpdateBalance(
	ctx context.Context,
	clientID int64,
	number string,
	balance decimal.Decimal,
) error {
	res := r.db.WithContext(ctx).
		Model(&ClientAccount{}).
		Where("client_id = ? AND client_account_number = ?", clientID, number).
		Update("display_balance", balance)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const creditCardLimitQuery = `SELECT ccl.account_limit
FROM credit_card_limit ccl
JOIN client_account ca ON ca.client_account_number = ccl.client_account_number
JOIN account_type t ON t.account_type_code = ca.account_type_code
WHERE ccl.client_account_number = ? AND t.account_type_code = ? AND t.transactional = TRUE`

type creditCardLimitRepository struct {
	db *gorm.DB
}

func NewCreditCardLimitRepository(db *gorm.DB) repository.CreditCardLimitRepository {
	return &creditCardLimitRepository{db: db}
}

func (r *creditCardLimitRepository) Get(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	var row creditLimitRow
	res := r.db.WithContext(ctx).Raw(creditCardLimitQuery, accountNumber, atm.AccountTypeCreditCard).Scan(&row)
	if res.Error != nil {
		return decimal.Zero, MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 || !row.AccountLimit.Valid {
		return decimal.Zero, domain.ErrNotFound
	}
	return row.AccountLimit.Decimal, nil
}

type atmRepository struct {
	db *gorm.DB
}

func NewAtmRepository(db *gorm.DB) repository.AtmRepository {
	return &atmRepository{db: db}
}

func (r *atmRepository) Exists(ctx context.Context, atmID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Atm{}).Where("atm_id = ?", atmID).Count(&count).Error; err != nil {
		return false, MapGormErrorToDomain(err)
	}
	return count == 1, nil
}

const allocationQuery = `SELECT aa.atm_allocation_id, aa.atm_id, aa.denomination_id, d.denomination_value,
d.denomination_type_code, aa.count
FROM atm_allocation aa
JOIN denomination d ON d.denomination_id = aa.denomination_id
WHERE aa.atm_id = ?
ORDER BY d.denomination_value DESC, aa.atm_allocation_id`

type allocationRepository struct {
	db   *gorm.DB
	lock bool
}

// NewAllocationRepository creates an allocation repository. With lock set, ListByAtm
// locks the allocation rows until the surrounding transaction ends.
func NewAllocationRepository(db *gorm.DB, lock bool) repository.AllocationRepository {
	return &allocationRepository{db: db, lock: lock}
}

func (r *allocationRepository) ListByAtm(ctx context.Context, atmID int64) ([]atm.Allocation, error) {
	var rows []allocationRow
	if err := r.db.WithContext(ctx).Raw(forUpdate(allocationQuery, r.lock, "aa"), atmID).Scan(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]atm.Allocation, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAllocation(row))
	}
	return out, nil
}

// UpdateCounts writes each remaining count to its allocation row. A row that no longer
// belongs to atmID fails the whole update with domain.ErrNotFound.
func (r *allocationRepository) UpdateCounts(ctx context.Context, atmID int64, updates []atm.AllocationUpdate) error {
	for _, u := range updates {
		res := r.db.WithContext(ctx).
			Exec("UPDATE atm_allocation SET count = ? WHERE atm_allocation_id = ? AND atm_id = ?",
				u.RemainingCount, u.AllocationID, atmID)
		if res.Error != nil {
			return fmt.Errorf("allocation %d: %w", u.AllocationID, MapGormErrorToDomain(res.Error))
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("allocation %d: %w", u.AllocationID, domain.ErrNotFound)
		}
	}
	return nil
}

type currencyRateRepository struct {
	db *gorm.DB
}

func NewCurrencyRateRepository(db *gorm.DB) repository.CurrencyRateRepository {
	return &currencyRateRepository{db: db}
}

func (r *currencyRateRepository) List(ctx context.Context) ([]atm.CurrencyRate, error) {
	var rows []CurrencyConversionRate
	if err := r.db.WithContext(ctx).Order("currency_code").Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]atm.CurrencyRate, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRate(row))
	}
	return out, nil
}
