package atm

import (
	"encoding/json"

	"github.com/amirasaad/atm/pkg/money"
	"github.com/shopspring/decimal"
)

// PresentedAccount is the client-facing view of an account. It is derived on every request and never persisted.
type PresentedAccount struct {
	AccountNumber   int64            `json:"accountNumber"`
	TypeCode        string           `json:"typeCode"`
	TypeDescription string           `json:"accountTypeDescription"`
	CurrencyCode    string           `json:"currencyCode"`
	ConversionRate  decimal.Decimal  `json:"conversionRate"`
	Balance         *decimal.Decimal `json:"balance,omitempty"`
	CcyBalance      *decimal.Decimal `json:"ccyBalance,omitempty"`
	ZarBalance      *decimal.Decimal `json:"zarBalance,omitempty"`
	Limit           *decimal.Decimal `json:"accountLimit,omitempty"`
}

func fixed(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(money.DisplayScale))
}

func fixedPtr(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := fixed(*d)
	return &n
}

// MarshalJSON writes amounts as JSON numbers with money.DisplayScale decimals, e.g. 10250.000.
func (p PresentedAccount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AccountNumber   int64        `json:"accountNumber"`
		TypeCode        string       `json:"typeCode"`
		TypeDescription string       `json:"accountTypeDescription"`
		CurrencyCode    string       `json:"currencyCode"`
		ConversionRate  json.Number  `json:"conversionRate"`
		Balance         *json.Number `json:"balance,omitempty"`
		CcyBalance      *json.Number `json:"ccyBalance,omitempty"`
		ZarBalance      *json.Number `json:"zarBalance,omitempty"`
		Limit           *json.Number `json:"accountLimit,omitempty"`
	}{
		AccountNumber:   p.AccountNumber,
		TypeCode:        p.TypeCode,
		TypeDescription: p.TypeDescription,
		CurrencyCode:    p.CurrencyCode,
		ConversionRate:  fixed(p.ConversionRate),
		Balance:         fixedPtr(p.Balance),
		CcyBalance:      fixedPtr(p.CcyBalance),
		ZarBalance:      fixedPtr(p.ZarBalance),
		Limit:           fixedPtr(p.Limit),
	})
}

// DispensedNote is one line of a dispense plan: count notes of the given denomination.
type DispensedNote struct {
	DenominationID int64           `json:"denominationId"`
	Value          decimal.Decimal `json:"denominationValue"`
	Count          int             `json:"count"`
}

// Amount returns value × count.
func (n DispensedNote) Amount() decimal.Decimal {
	return n.Value.Mul(decimal.NewFromInt(int64(n.Count)))
}

// AllocationUpdate carries the count left in one allocation row after dispensing.
type AllocationUpdate struct {
	AllocationID   int64
	DenominationID int64
	RemainingCount int
}
