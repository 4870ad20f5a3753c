package events

import (
	"time"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalDispensed is emitted after a withdrawal has been committed.
type WithdrawalDispensed struct {
	ID            uuid.UUID           `json:"id"`
	TraceID       string              `json:"traceId,omitempty"`
	ClientID      int64               `json:"clientId"`
	AtmID         int64               `json:"atmId"`
	AccountNumber string              `json:"accountNumber"`
	Amount        decimal.Decimal     `json:"amount"`
	NewBalance    decimal.Decimal     `json:"newBalance"`
	Notes         []atm.DispensedNote `json:"notes"`
	Timestamp     time.Time           `json:"timestamp"`
}

func (e *WithdrawalDispensed) Type() string {
	return EventTypeWithdrawalDispensed.String()
}

// RatesRefreshed is emitted after the rate table was reloaded.
type RatesRefreshed struct {
	ID        uuid.UUID `json:"id"`
	Loaded    int       `json:"loaded"`
	Skipped   int       `json:"skipped"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *RatesRefreshed) Type() string {
	return EventTypeRatesRefreshed.String()
}

// ReportWritten is emitted after a month-end report file was written.
type ReportWritten struct {
	ID        uuid.UUID `json:"id"`
	Report    string    `json:"report"`
	Path      string    `json:"path"`
	Rows      int       `json:"rows"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *ReportWritten) Type() string {
	return EventTypeReportWritten.String()
}
