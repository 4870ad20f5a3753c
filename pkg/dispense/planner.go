package dispense

import (
	"fmt"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/money"
	"github.com/shopspring/decimal"
)

// Kind classifies why a withdrawal cannot be dispensed.
type Kind int

const (
	// KindDenominationMismatch means the amount is not a multiple of the smallest note.
	KindDenominationMismatch Kind = iota + 1
	// KindInsufficientAtmFunds means the exact amount is out of reach but a lower one can be offered.
	KindInsufficientAtmFunds
	// KindUndispensable means no positive amount can be dispensed.
	KindUndispensable
)

// Failure is returned by Dispense when no plan exists for the requested amount.
type Failure struct {
	Kind       Kind
	Minimum    decimal.Decimal
	Suggestion decimal.Decimal
}

// Error implements error.
func (f *Failure) Error() string {
	return f.Message()
}

// Message returns the text shown to the client.
func (f *Failure) Message() string {
	switch f.Kind {
	case KindDenominationMismatch:
		return fmt.Sprintf("ATM can only dispense cash in multiples of %s", money.Format(f.Minimum))
	case KindInsufficientAtmFunds:
		return fmt.Sprintf("Amount not available, would you like to draw %s?", money.Format(f.Suggestion))
	default:
		return atm.TextUndispensable
	}
}

// Reason maps the failure onto a response reason.
func (f *Failure) Reason() atm.Reason {
	switch f.Kind {
	case KindDenominationMismatch:
		return atm.ReasonDenominationMismatch
	case KindInsufficientAtmFunds:
		return atm.ReasonInsufficientAtmFunds
	default:
		return atm.ReasonUndispensable
	}
}

// Plan is a feasible way to dispense an amount.
type Plan struct {
	// Notes lists what leaves the ATM, largest denomination first.
	Notes []atm.DispensedNote
	// Updates carries the count left in every allocation row touched.
	Updates []atm.AllocationUpdate
}

// Total returns the amount the plan dispenses.
func (p *Plan) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, n := range p.Notes {
		sum = sum.Add(n.Amount())
	}
	return sum
}

// Dispense plans amount against inv. It returns a *Failure when the amount cannot be dispensed exactly.
func Dispense(inv *Inventory, amount decimal.Decimal) (*Plan, error) {
	minimum, ok := inv.Min()
	if !ok {
		return nil, &Failure{Kind: KindUndispensable}
	}
	if !money.IsMultiple(amount, minimum) {
		return nil, &Failure{Kind: KindDenominationMismatch, Minimum: minimum}
	}
	if inv.Total().LessThan(amount) {
		return nil, inv.offerLower(amount, minimum)
	}

	notes, updates, remaining := inv.greedy(amount)
	if remaining.IsPositive() {
		return nil, inv.offerLower(amount, minimum)
	}
	return &Plan{Notes: notes, Updates: updates}, nil
}

func (inv *Inventory) offerLower(amount, minimum decimal.Decimal) *Failure {
	suggestion := inv.Suggest(amount)
	if !suggestion.IsPositive() {
		return &Failure{Kind: KindUndispensable, Minimum: minimum}
	}
	return &Failure{Kind: KindInsufficientAtmFunds, Minimum: minimum, Suggestion: suggestion}
}

// Suggest searches downwards from amount minus the smallest note, one currency unit at a time,
// for the first amount the inventory can dispense exactly. It returns zero when there is none.
func (inv *Inventory) Suggest(amount decimal.Decimal) decimal.Decimal {
	minimum, ok := inv.Min()
	if !ok {
		return decimal.Zero
	}
	candidate := amount.Sub(minimum)
	// Candidates above the total can never resolve; skip them in whole units.
	if over := candidate.Sub(inv.Total()); over.IsPositive() {
		candidate = candidate.Sub(over.Ceil().Mul(money.Unit))
	}
	for candidate.IsPositive() {
		if _, _, remaining := inv.greedy(candidate); remaining.IsZero() {
			return candidate
		}
		candidate = candidate.Sub(money.Unit)
	}
	return decimal.Zero
}
