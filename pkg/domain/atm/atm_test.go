package atm

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_WithBalanceReturnsCopy(t *testing.T) {
	orig := NewAccount("4000123").
		WithClient(1).
		WithType(AccountTypeCheque, "Cheque Account", true).
		WithCurrency("ZAR").
		WithBalance(decimal.NewFromInt(500)).
		Build()

	updated := orig.WithBalance(decimal.NewFromInt(300))

	assert.True(t, orig.Balance.Decimal.Equal(decimal.NewFromInt(500)))
	assert.True(t, updated.Balance.Decimal.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, orig.Number, updated.Number)
}

func TestAccount_NumericNumber(t *testing.T) {
	tests := []struct {
		number string
		want   int64
		ok     bool
	}{
		{"4000123", 4000123, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"   ", 0, false},
		{"12A4", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			got, ok := Account{Number: tt.number}.NumericNumber()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrencyRate(t *testing.T) {
	r := CurrencyRate{CurrencyCode: " usd", Operator: OperatorMultiply, Rate: decimal.NewNullDecimal(decimal.RequireFromString("18.5"))}
	assert.Equal(t, "USD", r.Key())
	assert.True(t, r.Usable())
	assert.True(t, r.Complete())

	zero := CurrencyRate{CurrencyCode: "EUR", Operator: OperatorDivide, Rate: decimal.NewNullDecimal(decimal.Zero)}
	assert.False(t, zero.Usable())

	missing := CurrencyRate{CurrencyCode: "GBP"}
	assert.False(t, missing.Usable())
	assert.False(t, missing.Complete())
}

func TestDenomination_Dispensable(t *testing.T) {
	assert.True(t, Denomination{Type: DenominationNote}.Dispensable())
	assert.False(t, Denomination{Type: DenominationCoin}.Dispensable())
}

func TestReason_SharedTextDistinctEnum(t *testing.T) {
	assert.Equal(t, ReasonNoAccountsToDisplay.Text(), ReasonClientNotFound.Text())
	assert.Equal(t, ReasonNoAccountsToDisplay.Text(), ReasonAccountNotFound.Text())
	assert.NotEqual(t, ReasonClientNotFound, ReasonAccountNotFound)
	assert.Equal(t, ReasonGeneralError.Text(), ReasonBalanceWriteFailed.Text())
	assert.Equal(t, ReasonAtmNotFound.Text(), ReasonAtmNotFunded.Text())
}

func TestReason_Codes(t *testing.T) {
	tests := []struct {
		reason  Reason
		code    int
		success bool
		text    string
	}{
		{ReasonDisplayTransactional, http.StatusOK, true, "Displaying transactional accounts"},
		{ReasonDisplayForeign, http.StatusOK, true, "Displaying foreign currency accounts"},
		{ReasonWithdrawalSuccessful, http.StatusOK, true, "Withdrawal successful"},
		{ReasonInvalidClient, http.StatusBadRequest, false, "Invalid client identifier (ID) provided"},
		{ReasonInvalidAccount, http.StatusBadRequest, false, "Invalid client account number provided"},
		{ReasonInvalidAmount, http.StatusBadRequest, false, "Invalid withdrawal amount requested"},
		{ReasonInsufficientFunds, http.StatusBadRequest, false, "Insufficient funds"},
		{ReasonAtmNotFound, http.StatusBadRequest, false, "ATM not registered or unfunded"},
		{ReasonUndispensable, http.StatusBadRequest, false, "ATM cannot dispense the requested amount"},
		{ReasonGeneralError, http.StatusInternalServerError, false, "An error occurred while processing your request"},
	}
	for _, tt := range tests {
		t.Run(tt.reason.String(), func(t *testing.T) {
			res := NewResult(tt.reason)
			assert.Equal(t, tt.code, res.StatusCode)
			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.text, res.StatusReason)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestNewResultWithMessage(t *testing.T) {
	res := NewResultWithMessage(ReasonDenominationMismatch, "ATM can only dispense cash in multiples of 10.00")
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "ATM can only dispense cash in multiples of 10.00", res.StatusReason)
}

func TestNewClientView(t *testing.T) {
	assert.Equal(t, &ClientView{}, NewClientView(nil))
	v := NewClientView(&Client{ID: 7, Title: "Mr", Name: "John", Surname: "Doe"})
	assert.Equal(t, int64(7), v.ID)
	assert.Equal(t, "Doe", v.Surname)
}

func TestDispensedNote_Amount(t *testing.T) {
	n := DispensedNote{Value: decimal.NewFromInt(200), Count: 3}
	assert.True(t, n.Amount().Equal(decimal.NewFromInt(600)))
}

func TestPresentedAccount_MarshalJSON(t *testing.T) {
	bal := decimal.NewFromInt(10250)
	ref := decimal.RequireFromString("-12.5")
	data, err := json.Marshal(PresentedAccount{
		AccountNumber:  1002,
		TypeCode:       AccountTypeForeignCurrency,
		CurrencyCode:   "USD",
		ConversionRate: decimal.RequireFromString("18.5"),
		CcyBalance:     &bal,
		ZarBalance:     &ref,
	})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"conversionRate":18.500`)
	assert.Contains(t, out, `"ccyBalance":10250.000`)
	assert.Contains(t, out, `"zarBalance":-12.500`)
	assert.NotContains(t, out, `"balance"`)
	assert.NotContains(t, out, `"accountLimit"`)

	var back PresentedAccount
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.ConversionRate.Equal(decimal.RequireFromString("18.5")))
	require.NotNil(t, back.CcyBalance)
	assert.True(t, back.CcyBalance.Equal(bal))
}

func TestResponse_MarshalJSONViews(t *testing.T) {
	balances, err := json.Marshal(NewResponse(ReasonNoAccountsToDisplay))
	require.NoError(t, err)
	assert.Contains(t, string(balances), `"accounts":[]`)
	assert.NotContains(t, string(balances), `"denomination"`)
	assert.NotContains(t, string(balances), `"account"`)

	w := NewResponse(ReasonAtmNotFunded)
	w.View = ViewWithdrawal
	withdrawal, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(withdrawal), `"denomination":[]`)
	assert.NotContains(t, string(withdrawal), `"accounts"`)
	assert.Contains(t, string(withdrawal), `"result":{`)
}
