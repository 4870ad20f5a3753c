package atm

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Operator is the conversion indicator of a rate: how to turn an own-currency amount into the reference currency.
type Operator string

const (
	OperatorMultiply Operator = "*"
	OperatorDivide   Operator = "/"
)

// ReferenceCurrency is the default home currency all balances are converted to.
const ReferenceCurrency = "ZAR"

// CurrencyRate is the live conversion rate of one currency into the reference currency.
type CurrencyRate struct {
	CurrencyCode string
	Operator     Operator
	Rate         decimal.NullDecimal
}

// Key returns the lookup key of the rate in a rate table.
func (r CurrencyRate) Key() string {
	return RateKey(r.CurrencyCode)
}

// Usable reports whether the rate can convert an amount.
func (r CurrencyRate) Usable() bool {
	return r.Rate.Valid && r.Rate.Decimal.IsPositive()
}

// Complete reports whether every field of the rate is set.
func (r CurrencyRate) Complete() bool {
	return strings.TrimSpace(r.CurrencyCode) != "" && r.Operator != "" && r.Rate.Valid
}

// RateKey normalizes a currency code into a rate table key.
func RateKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
