package atm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/atm/pkg/domain"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/money"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/shopspring/decimal"
)

// Presenter turns stored accounts into client-facing views.
type Presenter struct {
	reference string
	overdraft decimal.Decimal
	limits    repository.CreditCardLimitRepository
}

// NewPresenter creates a Presenter converting into the reference currency.
// limits is consulted for credit card accounts held in the reference currency.
func NewPresenter(
	reference string,
	overdraft decimal.Decimal,
	limits repository.CreditCardLimitRepository,
) *Presenter {
	return &Presenter{reference: reference, overdraft: overdraft, limits: limits}
}

func unpresentable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrUnpresentable, fmt.Sprintf(format, args...))
}

// Present builds the view of acc using the given rate snapshot.
// It returns an error wrapping domain.ErrUnpresentable when the record is incomplete;
// any other error comes from the credit card limit lookup.
func (p *Presenter) Present(
	ctx context.Context,
	acc atm.Account,
	rates map[string]atm.CurrencyRate,
) (*atm.PresentedAccount, error) {
	number, ok := acc.NumericNumber()
	if !ok {
		return nil, unpresentable("account number %q is not numeric", acc.Number)
	}
	if strings.TrimSpace(acc.Type.Code) == "" || strings.TrimSpace(acc.Type.Description) == "" {
		return nil, unpresentable("account %s has no type", acc.Number)
	}
	if strings.TrimSpace(acc.CurrencyCode) == "" {
		return nil, unpresentable("account %s has no currency", acc.Number)
	}
	rate, ok := rates[atm.RateKey(acc.CurrencyCode)]
	if !ok || !rate.Usable() {
		return nil, unpresentable("no usable rate for currency %s", acc.CurrencyCode)
	}
	if !acc.Balance.Valid {
		return nil, unpresentable("account %s has no balance", acc.Number)
	}

	balance := acc.Balance.Decimal
	own := money.Round(balance)
	view := &atm.PresentedAccount{
		AccountNumber:   number,
		TypeCode:        acc.Type.Code,
		TypeDescription: acc.Type.Description,
		CurrencyCode:    acc.CurrencyCode,
		ConversionRate:  money.Round(rate.Rate.Decimal),
	}

	local := acc.IsCurrency(p.reference)
	if local {
		view.Balance = money.RoundPtr(own)
		view.ZarBalance = money.RoundPtr(own)
	} else {
		view.CcyBalance = money.RoundPtr(own)
		switch rate.Operator {
		case atm.OperatorMultiply:
			view.ZarBalance = money.RoundPtr(balance.Mul(rate.Rate.Decimal))
		case atm.OperatorDivide:
			zar, err := money.Divide(balance, rate.Rate.Decimal)
			if err != nil {
				return nil, unpresentable("rate of %s cannot divide: %v", acc.CurrencyCode, err)
			}
			view.ZarBalance = &zar
		}
	}

	switch {
	case local && acc.IsType(atm.AccountTypeCheque):
		view.Limit = money.RoundPtr(p.overdraft.Add(balance))
	case local && acc.IsType(atm.AccountTypeCreditCard):
		limit, err := p.creditLimit(ctx, acc.Number)
		if err != nil {
			return nil, err
		}
		view.ZarBalance = money.RoundPtr(balance.Sub(limit))
		view.Limit = money.RoundPtr(limit)
	case acc.IsType(atm.AccountTypeForeignCurrency):
		view.Limit = money.RoundPtr(own)
	case view.ZarBalance != nil:
		view.Limit = money.RoundPtr(*view.ZarBalance)
	}
	return view, nil
}

func (p *Presenter) creditLimit(ctx context.Context, number string) (decimal.Decimal, error) {
	if p.limits == nil {
		return decimal.Zero, unpresentable("no credit card limit source for account %s", number)
	}
	limit, err := p.limits.Get(ctx, number)
	if errors.Is(err, domain.ErrNotFound) {
		return decimal.Zero, unpresentable("account %s has no credit card limit", number)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("credit card limit lookup for %s: %w", number, err)
	}
	return limit, nil
}

// IsUnpresentable reports whether err marks an account that cannot be shown.
func IsUnpresentable(err error) bool {
	return errors.Is(err, domain.ErrUnpresentable)
}
