package atm

import (
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/atm/internal/fixtures/mocks"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(code string, op atm.Operator, r string) atm.CurrencyRate {
	return atm.CurrencyRate{CurrencyCode: code, Operator: op, Rate: decimal.NewNullDecimal(dec(r))}
}

func testRates() map[string]atm.CurrencyRate {
	return map[string]atm.CurrencyRate{
		"ZAR": rate("ZAR", atm.OperatorMultiply, "1"),
		"USD": rate("USD", atm.OperatorMultiply, "18.5"),
		"GBP": rate("GBP", atm.OperatorDivide, "3"),
		"EUR": rate("EUR", atm.Operator("+"), "20"),
		"JPY": {CurrencyCode: "JPY", Operator: atm.OperatorMultiply},
		"ZMW": rate("ZMW", atm.OperatorDivide, "0"),
	}
}

func chq(number, balance string) atm.Account {
	return atm.NewAccount(number).
		WithClient(1).
		WithType(atm.AccountTypeCheque, "Cheque Account", true).
		WithCurrency("ZAR").
		WithBalance(dec(balance)).
		Build()
}

func account(number, typeCode, currency, balance string) atm.Account {
	return atm.NewAccount(number).
		WithClient(1).
		WithType(typeCode, typeCode+" account", true).
		WithCurrency(currency).
		WithBalance(dec(balance)).
		Build()
}

func assertDecimal(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	if assert.NotNil(t, got) {
		assert.True(t, dec(want).Equal(*got), "want %s, got %s", want, got.String())
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	uow         *mocks.UnitOfWork
	clients     *mocks.MockClientRepository
	accounts    *mocks.MockAccountRepository
	limits      *mocks.MockCreditCardLimitRepository
	atms        *mocks.MockAtmRepository
	allocations *mocks.MockAllocationRepository
	rates       *mocks.RateTable
	bus         *mocks.MockBus
	svc         *Service
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		clients:     mocks.NewMockClientRepository(t),
		accounts:    mocks.NewMockAccountRepository(t),
		limits:      mocks.NewMockCreditCardLimitRepository(t),
		atms:        mocks.NewMockAtmRepository(t),
		allocations: mocks.NewMockAllocationRepository(t),
		rates:       &mocks.RateTable{Rates: testRates()},
		bus:         mocks.NewMockBus(t),
	}
	f.uow = &mocks.UnitOfWork{
		Clients:     f.clients,
		Accounts:    f.accounts,
		Limits:      f.limits,
		Atms:        f.atms,
		Allocations: f.allocations,
	}
	f.svc = NewService(config.Deps{
		Uow:       f.uow,
		RateTable: f.rates,
		EventBus:  f.bus,
		Logger:    discardLogger(),
		Config: &config.App{Bank: &config.Bank{
			ReferenceCurrency: "ZAR",
			OverdraftLimit:    dec("10000.000"),
		}},
	})
	return f
}
