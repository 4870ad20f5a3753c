package atm

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Account type codes known to the presentation rules.
const (
	AccountTypeCheque          = "CHQ"
	AccountTypeSavings         = "SVGS"
	AccountTypeHomeLoan        = "HLOAN"
	AccountTypePersonalLoan    = "PLOAN"
	AccountTypeCreditCard      = "CCRD"
	AccountTypeForeignCurrency = "CFCA"
)

// AccountType classifies an account.
type AccountType struct {
	Code          string
	Description   string
	Transactional bool
}

// Account is a client account as stored, before any presentation rules are applied.
//
// Invariants:
//   - An Account is never mutated after construction; WithBalance returns a copy.
//   - Balance is signed and may be unset when the source row carries no balance.
type Account struct {
	Number       string
	ClientID     int64
	Type         AccountType
	CurrencyCode string
	Balance      decimal.NullDecimal
}

// WithBalance returns a copy of the account carrying the given balance.
func (a Account) WithBalance(balance decimal.Decimal) Account {
	a.Balance = decimal.NewNullDecimal(balance)
	return a
}

// NumericNumber parses the account number, reporting false when it is blank or not numeric.
func (a Account) NumericNumber() (int64, bool) {
	n := strings.TrimSpace(a.Number)
	if n == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(n, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsType reports whether the account has the given type code.
func (a Account) IsType(code string) bool {
	return strings.EqualFold(a.Type.Code, code)
}

// IsCurrency reports whether the account is held in the given currency.
func (a Account) IsCurrency(code string) bool {
	return strings.EqualFold(a.CurrencyCode, code)
}

// AccountBuilder provides a fluent API for constructing Account values.
type AccountBuilder struct {
	acc Account
}

// NewAccount starts building an account with the given number.
func NewAccount(number string) *AccountBuilder {
	return &AccountBuilder{acc: Account{Number: number}}
}

// WithClient sets the owning client.
func (b *AccountBuilder) WithClient(clientID int64) *AccountBuilder {
	b.acc.ClientID = clientID
	return b
}

// WithType sets the account type.
func (b *AccountBuilder) WithType(code, description string, transactional bool) *AccountBuilder {
	b.acc.Type = AccountType{Code: code, Description: description, Transactional: transactional}
	return b
}

// WithCurrency sets the currency code.
func (b *AccountBuilder) WithCurrency(code string) *AccountBuilder {
	b.acc.CurrencyCode = code
	return b
}

// WithBalance sets the stored balance.
func (b *AccountBuilder) WithBalance(balance decimal.Decimal) *AccountBuilder {
	b.acc.Balance = decimal.NewNullDecimal(balance)
	return b
}

// Build returns the constructed account.
func (b *AccountBuilder) Build() Account {
	return b.acc
}
