package atm

import (
	"testing"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/money"
	"github.com/stretchr/testify/assert"
)

func presented(number int64, zar string) atm.PresentedAccount {
	view := atm.PresentedAccount{AccountNumber: number}
	if zar != "" {
		view.ZarBalance = money.RoundPtr(dec(zar))
	}
	return view
}

func numbers(accounts []atm.PresentedAccount) []int64 {
	out := make([]int64, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.AccountNumber)
	}
	return out
}

func TestRankLocal(t *testing.T) {
	in := []atm.PresentedAccount{
		presented(1, "100"),
		presented(2, "-5"),
		presented(3, ""),
		presented(4, "300"),
		presented(5, "100"),
	}

	out := RankLocal(in)

	assert.Equal(t, []int64{4, 1, 5, 3, 2}, numbers(out))
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, numbers(in), "input must not be reordered")
	for i := 1; i < len(out); i++ {
		prev := money.ValueOrZero(out[i-1].ZarBalance)
		assert.True(t, prev.GreaterThanOrEqual(money.ValueOrZero(out[i].ZarBalance)))
	}
}

func TestRankForeign(t *testing.T) {
	in := []atm.PresentedAccount{
		presented(1, "100"),
		presented(2, "-5"),
		presented(3, ""),
		presented(4, "0"),
		presented(5, "50"),
	}

	out := RankForeign(in)

	assert.Equal(t, []int64{2, 3, 4, 5, 1}, numbers(out))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, RankLocal(nil))
	assert.Empty(t, RankForeign([]atm.PresentedAccount{}))
}
