package atm

import (
	"sort"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/money"
)

// RankLocal orders transactional accounts by reference balance, highest first.
// Accounts with equal balances keep their input order.
func RankLocal(accounts []atm.PresentedAccount) []atm.PresentedAccount {
	return rank(accounts, func(a, b atm.PresentedAccount) bool {
		return money.ValueOrZero(a.ZarBalance).GreaterThan(money.ValueOrZero(b.ZarBalance))
	})
}

// RankForeign orders foreign currency accounts by reference balance, lowest first.
// Accounts with equal balances keep their input order.
func RankForeign(accounts []atm.PresentedAccount) []atm.PresentedAccount {
	return rank(accounts, func(a, b atm.PresentedAccount) bool {
		return money.ValueOrZero(a.ZarBalance).LessThan(money.ValueOrZero(b.ZarBalance))
	})
}

func rank(accounts []atm.PresentedAccount, less func(a, b atm.PresentedAccount) bool) []atm.PresentedAccount {
	out := make([]atm.PresentedAccount, len(accounts))
	copy(out, accounts)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
