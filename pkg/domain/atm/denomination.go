package atm

import "github.com/shopspring/decimal"

// DenominationType distinguishes notes from coins.
type DenominationType string

const (
	DenominationNote DenominationType = "N"
	DenominationCoin DenominationType = "C"
)

// Denomination is a note or coin face value.
type Denomination struct {
	ID    int64
	Value decimal.Decimal
	Type  DenominationType
}

// Dispensable reports whether an ATM can hand out this denomination.
func (d Denomination) Dispensable() bool {
	return d.Type != DenominationCoin
}

// Allocation is the number of notes of one denomination loaded into an ATM.
// ID identifies the allocation row; an ATM may hold several rows for one denomination.
type Allocation struct {
	ID           int64
	AtmID        int64
	Denomination Denomination
	Count        int
}
