package atm

import "encoding/json"

// ClientView is the client block of a response.
type ClientView struct {
	ID      int64  `json:"id"`
	Title   string `json:"title,omitempty"`
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
}

// NewClientView builds the client block from a client record.
func NewClientView(c *Client) *ClientView {
	if c == nil {
		return &ClientView{}
	}
	return &ClientView{ID: c.ID, Title: c.Title, Name: c.Name, Surname: c.Surname}
}

// Result is the outcome block of a response.
type Result struct {
	Success      bool   `json:"success"`
	StatusCode   int    `json:"statusCode"`
	StatusReason string `json:"statusReason"`
	Reason       Reason `json:"-"`
}

// NewResult builds the outcome block of a reason with its fixed text.
func NewResult(r Reason) Result {
	return Result{Success: r.Success(), StatusCode: r.Code(), StatusReason: r.Text(), Reason: r}
}

// NewResultWithMessage builds the outcome block of a reason whose text is computed by the caller.
func NewResultWithMessage(r Reason, msg string) Result {
	res := NewResult(r)
	res.StatusReason = msg
	return res
}

// View selects the fields a Response carries on the wire.
type View int

const (
	// ViewBalances carries client, accounts and result.
	ViewBalances View = iota
	// ViewWithdrawal carries client, account, denomination and result.
	ViewWithdrawal
)

// Response is the single envelope returned by every balance and withdrawal operation.
type Response struct {
	Client        *ClientView        `json:"client,omitempty"`
	Accounts      []PresentedAccount `json:"accounts"`
	Account       *PresentedAccount  `json:"account,omitempty"`
	Denominations []DispensedNote    `json:"denomination"`
	Result        Result             `json:"result"`
	View          View               `json:"-"`
}

// MarshalJSON encodes the fields of r.View. The list of the view is always present,
// empty rather than null.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.View == ViewWithdrawal {
		notes := r.Denominations
		if notes == nil {
			notes = []DispensedNote{}
		}
		return json.Marshal(struct {
			Client        *ClientView       `json:"client,omitempty"`
			Account       *PresentedAccount `json:"account,omitempty"`
			Denominations []DispensedNote   `json:"denomination"`
			Result        Result            `json:"result"`
		}{r.Client, r.Account, notes, r.Result})
	}
	accounts := r.Accounts
	if accounts == nil {
		accounts = []PresentedAccount{}
	}
	return json.Marshal(struct {
		Client   *ClientView        `json:"client,omitempty"`
		Accounts []PresentedAccount `json:"accounts"`
		Result   Result             `json:"result"`
	}{r.Client, accounts, r.Result})
}

// NewResponse returns an envelope carrying only the outcome of r.
func NewResponse(r Reason) *Response {
	return &Response{Result: NewResult(r)}
}
