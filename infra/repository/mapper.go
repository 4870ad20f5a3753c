package repository

import (
	"strings"

	"github.com/amirasaad/atm/pkg/domain/atm"
)

func mapClient(c *Client) *atm.Client {
	out := &atm.Client{ID: c.ClientID, Name: c.Name}
	if c.Title != nil {
		out.Title = *c.Title
	}
	if c.Surname != nil {
		out.Surname = *c.Surname
	}
	return out
}

func mapAccount(r accountRow) atm.Account {
	return atm.Account{
		Number:       r.ClientAccountNumber,
		ClientID:     r.ClientID,
		Type:         atm.AccountType{Code: r.AccountTypeCode, Description: r.Description, Transactional: r.Transactional},
		CurrencyCode: r.CurrencyCode,
		Balance:      r.DisplayBalance,
	}
}

func mapAccounts(rows []accountRow) []atm.Account {
	out := make([]atm.Account, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapAccount(r))
	}
	return out
}

func mapAllocation(r allocationRow) atm.Allocation {
	return atm.Allocation{
		ID:    r.AtmAllocationID,
		AtmID: r.AtmID,
		Denomination: atm.Denomination{
			ID:    r.DenominationID,
			Value: r.DenominationValue,
			Type:  atm.DenominationType(strings.ToUpper(strings.TrimSpace(r.DenominationTypeCode))),
		},
		Count: r.Count,
	}
}

func mapRate(r CurrencyConversionRate) atm.CurrencyRate {
	out := atm.CurrencyRate{CurrencyCode: r.CurrencyCode, Rate: r.Rate}
	if r.ConversionIndicator != nil {
		out.Operator = atm.Operator(strings.TrimSpace(*r.ConversionIndicator))
	}
	return out
}
