package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientType is the top-level client classification (individual, non-resident, company, ...).
type ClientType struct {
	ClientTypeCode string `gorm:"primaryKey;size:2"`
	Description    string `gorm:"not null;size:255"`
}

func (ClientType) TableName() string { return "client_type" }

type ClientSubType struct {
	ClientSubTypeCode string `gorm:"primaryKey;size:4"`
	ClientTypeCode    string `gorm:"not null;size:2"`
	Description       string `gorm:"not null;size:255"`
}

func (ClientSubType) TableName() string { return "client_sub_type" }

// Client represents a client record in the database.
type Client struct {
	ClientID          int64   `gorm:"primaryKey"`
	Title             *string `gorm:"size:10"`
	Name              string  `gorm:"not null;size:255"`
	Surname           *string `gorm:"size:100"`
	Dob               time.Time
	ClientSubTypeCode string `gorm:"not null;size:4"`
}

func (Client) TableName() string { return "client" }

type AccountType struct {
	AccountTypeCode string `gorm:"primaryKey;size:10"`
	Description     string `gorm:"not null;size:50"`
	Transactional   bool
}

func (AccountType) TableName() string { return "account_type" }

type Currency struct {
	CurrencyCode  string `gorm:"primaryKey;size:3"`
	DecimalPlaces int    `gorm:"not null"`
	Description   string `gorm:"not null;size:255"`
}

func (Currency) TableName() string { return "currency" }

// CurrencyConversionRate stores how to convert a currency into the reference currency.
type CurrencyConversionRate struct {
	CurrencyCode        string              `gorm:"primaryKey;size:3"`
	ConversionIndicator *string             `gorm:"size:1"`
	Rate                decimal.NullDecimal `gorm:"type:numeric(18,8)"`
}

func (CurrencyConversionRate) TableName() string { return "currency_conversion_rate" }

// ClientAccount represents an account record in the database.
type ClientAccount struct {
	ClientAccountNumber string              `gorm:"primaryKey;size:10"`
	ClientID            int64               `gorm:"not null"`
	AccountTypeCode     string              `gorm:"not null;size:10"`
	CurrencyCode        string              `gorm:"not null;size:3"`
	DisplayBalance      decimal.NullDecimal `gorm:"type:numeric(18,3)"`
}

func (ClientAccount) TableName() string { return "client_account" }

type CreditCardLimit struct {
	ClientAccountNumber string          `gorm:"primaryKey;size:10"`
	AccountLimit        decimal.Decimal `gorm:"type:numeric(18,3);not null"`
}

func (CreditCardLimit) TableName() string { return "credit_card_limit" }

// Atm represents a registered machine.
type Atm struct {
	AtmID    int64  `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex;not null;size:10"`
	Location string `gorm:"not null;size:255"`
}

func (Atm) TableName() string { return "atm" }

type DenominationType struct {
	DenominationTypeCode string `gorm:"primaryKey;size:1"`
	Description          string `gorm:"not null;size:255"`
}

func (DenominationType) TableName() string { return "denomination_type" }

type Denomination struct {
	DenominationID       int64           `gorm:"primaryKey"`
	DenominationValue    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	DenominationTypeCode string          `gorm:"size:1"`
}

func (Denomination) TableName() string { return "denomination" }

// AtmAllocation is the count of one denomination loaded into an ATM.
type AtmAllocation struct {
	AtmAllocationID int64 `gorm:"primaryKey"`
	AtmID           int64 `gorm:"not null"`
	DenominationID  int64 `gorm:"not null"`
	Count           int   `gorm:"not null"`
}

func (AtmAllocation) TableName() string { return "atm_allocation" }

// accountRow is a client account joined with its type.
type accountRow struct {
	ClientAccountNumber string
	ClientID            int64
	AccountTypeCode     string
	Description         string
	Transactional       bool
	CurrencyCode        string
	DisplayBalance      decimal.NullDecimal
}

// allocationRow is an allocation joined with its denomination.
type allocationRow struct {
	AtmAllocationID      int64
	AtmID                int64
	DenominationID       int64
	DenominationValue    decimal.Decimal
	DenominationTypeCode string
	Count                int
}

type creditLimitRow struct {
	AccountLimit decimal.NullDecimal
}
