package atm

import "net/http"

// Reason identifies the outcome of a request. Several reasons share the same external text
// but remain distinct so callers and tests can tell the conditions apart.
type Reason int

const (
	ReasonDisplayTransactional Reason = iota + 1
	ReasonDisplayForeign
	ReasonWithdrawalSuccessful
	ReasonInvalidClient
	ReasonInvalidAccount
	ReasonInvalidAmount
	ReasonNoAccountsToDisplay
	ReasonClientNotFound
	ReasonAccountNotFound
	ReasonInsufficientFunds
	ReasonAtmNotFound
	ReasonAtmNotFunded
	ReasonDenominationMismatch
	ReasonInsufficientAtmFunds
	ReasonUndispensable
	ReasonGeneralError
	ReasonBalanceWriteFailed
)

const (
	textNoAccounts   = "No accounts to display"
	textAtmUnfunded  = "ATM not registered or unfunded"
	textGeneralError = "An error occurred while processing your request"
	// TextUndispensable is the hard failure reported when no amount at all can be dispensed.
	TextUndispensable = "ATM cannot dispense the requested amount"
)

var reasonInfo = map[Reason]struct {
	name string
	code int
	text string
}{
	ReasonDisplayTransactional: {"DisplayTransactional", http.StatusOK, "Displaying transactional accounts"},
	ReasonDisplayForeign:       {"DisplayForeign", http.StatusOK, "Displaying foreign currency accounts"},
	ReasonWithdrawalSuccessful: {"WithdrawalSuccessful", http.StatusOK, "Withdrawal successful"},
	ReasonInvalidClient:        {"InvalidClient", http.StatusBadRequest, "Invalid client identifier (ID) provided"},
	ReasonInvalidAccount:       {"InvalidAccount", http.StatusBadRequest, "Invalid client account number provided"},
	ReasonInvalidAmount:        {"InvalidAmount", http.StatusBadRequest, "Invalid withdrawal amount requested"},
	ReasonNoAccountsToDisplay:  {"NoAccountsToDisplay", http.StatusBadRequest, textNoAccounts},
	ReasonClientNotFound:       {"ClientNotFound", http.StatusBadRequest, textNoAccounts},
	ReasonAccountNotFound:      {"AccountNotFound", http.StatusBadRequest, textNoAccounts},
	ReasonInsufficientFunds:    {"InsufficientFunds", http.StatusBadRequest, "Insufficient funds"},
	ReasonAtmNotFound:          {"AtmNotFound", http.StatusBadRequest, textAtmUnfunded},
	ReasonAtmNotFunded:         {"AtmNotFunded", http.StatusBadRequest, textAtmUnfunded},
	ReasonDenominationMismatch: {"DenominationMismatch", http.StatusBadRequest, ""},
	ReasonInsufficientAtmFunds: {"InsufficientAtmFunds", http.StatusBadRequest, ""},
	ReasonUndispensable:        {"Undispensable", http.StatusBadRequest, TextUndispensable},
	ReasonGeneralError:         {"GeneralError", http.StatusInternalServerError, textGeneralError},
	ReasonBalanceWriteFailed:   {"BalanceWriteFailed", http.StatusInternalServerError, textGeneralError},
}

// String returns the reason name.
func (r Reason) String() string {
	if info, ok := reasonInfo[r]; ok {
		return info.name
	}
	return "Unknown"
}

// Code returns the HTTP-style status code of the reason.
func (r Reason) Code() int {
	if info, ok := reasonInfo[r]; ok {
		return info.code
	}
	return http.StatusInternalServerError
}

// Text returns the fixed external text of the reason. Planner reasons have none; their message is computed.
func (r Reason) Text() string {
	if info, ok := reasonInfo[r]; ok {
		if info.text != "" {
			return info.text
		}
		return info.name
	}
	return textGeneralError
}

// Success reports whether the reason is a successful outcome.
func (r Reason) Success() bool {
	return r.Code() == http.StatusOK
}
