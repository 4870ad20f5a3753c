package atm

import (
	"bytes"
	"strconv"
	"strings"

	atmsvc "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/shopspring/decimal"
)

// LooseInt accepts a JSON number or string. Anything unparsable decodes to 0.
type LooseInt int64

func (n *LooseInt) UnmarshalJSON(b []byte) error {
	*n = LooseInt(parseInt(string(bytes.Trim(b, `"`))))
	return nil
}

// LooseDecimal accepts a JSON number or string. Anything unparsable decodes to 0.
type LooseDecimal struct{ decimal.Decimal }

func (d *LooseDecimal) UnmarshalJSON(b []byte) error {
	d.Decimal = parseDecimal(string(bytes.Trim(b, `"`)))
	return nil
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// WithdrawRequest is the body of POST /withdraw.
type WithdrawRequest struct {
	ClientID       LooseInt     `json:"clientId"`
	AtmID          LooseInt     `json:"atmId"`
	AccountNumber  string       `json:"accountNumber" validate:"omitempty,max=64,printascii"`
	RequiredAmount LooseDecimal `json:"requiredAmount" swaggertype:"number"`
}

func (r WithdrawRequest) toService() atmsvc.WithdrawRequest {
	return atmsvc.WithdrawRequest{
		ClientID:      int64(r.ClientID),
		AtmID:         int64(r.AtmID),
		AccountNumber: strings.TrimSpace(r.AccountNumber),
		Amount:        r.RequiredAmount.Decimal,
	}
}
