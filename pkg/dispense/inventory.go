// Package dispense plans which notes an ATM hands out for a withdrawal.
package dispense

import (
	"sort"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/shopspring/decimal"
)

type slot struct {
	denominationID int64
	value          decimal.Decimal
	count          int
	// rows lists the allocation rows summed into this slot, first row first.
	rows []int64
}

func (s *slot) addRow(id int64) {
	for _, r := range s.rows {
		if r == id {
			return
		}
	}
	s.rows = append(s.rows, id)
}

// updates spreads remaining over the slot's rows: the first row keeps it all, the others are emptied.
func (s *slot) updates(remaining int) []atm.AllocationUpdate {
	out := make([]atm.AllocationUpdate, 0, len(s.rows))
	for i, id := range s.rows {
		left := 0
		if i == 0 {
			left = remaining
		}
		out = append(out, atm.AllocationUpdate{
			AllocationID:   id,
			DenominationID: s.denominationID,
			RemainingCount: left,
		})
	}
	return out
}

// Inventory is the note-only content of one ATM, ordered by denomination value, largest first.
//
// Invariants:
//   - Each denomination value appears once; duplicate allocation rows are summed and
//     every contributing row is updated after dispensing.
//   - Coins are never part of an inventory.
//   - An inventory is never changed by planning against it.
type Inventory struct {
	slots []slot
	total decimal.Decimal
}

// NewInventory builds an inventory from the allocation rows of an ATM.
func NewInventory(allocations []atm.Allocation) *Inventory {
	byValue := make(map[string]int, len(allocations))
	inv := &Inventory{total: decimal.Zero}
	for _, a := range allocations {
		if !a.Denomination.Dispensable() || !a.Denomination.Value.IsPositive() {
			continue
		}
		count := a.Count
		if count < 0 {
			count = 0
		}
		key := a.Denomination.Value.String()
		i, ok := byValue[key]
		if !ok {
			i = len(inv.slots)
			byValue[key] = i
			inv.slots = append(inv.slots, slot{
				denominationID: a.Denomination.ID,
				value:          a.Denomination.Value,
			})
		}
		inv.slots[i].count += count
		inv.slots[i].addRow(a.ID)
	}
	sort.SliceStable(inv.slots, func(i, j int) bool {
		return inv.slots[i].value.GreaterThan(inv.slots[j].value)
	})
	for _, s := range inv.slots {
		inv.total = inv.total.Add(s.value.Mul(decimal.NewFromInt(int64(s.count))))
	}
	return inv
}

// Len returns the number of distinct denominations.
func (inv *Inventory) Len() int {
	return len(inv.slots)
}

// Total returns Σ(value × count).
func (inv *Inventory) Total() decimal.Decimal {
	return inv.total
}

// Min returns the smallest denomination value, or false for an empty inventory.
func (inv *Inventory) Min() (decimal.Decimal, bool) {
	if len(inv.slots) == 0 {
		return decimal.Zero, false
	}
	return inv.slots[len(inv.slots)-1].value, true
}

// Count returns the available notes of a denomination value.
func (inv *Inventory) Count(value decimal.Decimal) int {
	for _, s := range inv.slots {
		if s.value.Equal(value) {
			return s.count
		}
	}
	return 0
}

// greedy dispenses largest-first and returns what it took and the unresolved remainder.
func (inv *Inventory) greedy(amount decimal.Decimal) ([]atm.DispensedNote, []atm.AllocationUpdate, decimal.Decimal) {
	var (
		notes     []atm.DispensedNote
		updates   []atm.AllocationUpdate
		remaining = amount
	)
	for _, s := range inv.slots {
		if !remaining.IsPositive() {
			break
		}
		if s.count == 0 {
			continue
		}
		q, _ := remaining.QuoRem(s.value, 0)
		n := q.IntPart()
		if n > int64(s.count) {
			n = int64(s.count)
		}
		if n <= 0 {
			continue
		}
		notes = append(notes, atm.DispensedNote{
			DenominationID: s.denominationID,
			Value:          s.value,
			Count:          int(n),
		})
		updates = append(updates, s.updates(s.count-int(n))...)
		remaining = remaining.Sub(s.value.Mul(decimal.NewFromInt(n)))
	}
	return notes, updates, remaining
}
