package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResponse() *atm.Response {
	bal := decimal.RequireFromString("10000.000")
	resp := atm.NewResponse(atm.ReasonWithdrawalSuccessful)
	resp.View = atm.ViewWithdrawal
	resp.Client = &atm.ClientView{ID: 7, Name: "Ann", Surname: "Smith"}
	resp.Account = &atm.PresentedAccount{AccountNumber: 4001, TypeCode: "CHQ", CurrencyCode: "ZAR", Balance: &bal, ZarBalance: &bal}
	resp.Denominations = []atm.DispensedNote{{DenominationID: 4, Value: decimal.NewFromInt(100), Count: 2}}
	return resp
}

func TestPrinter_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", false, "")
	cmd.SetOut(&buf)

	require.NoError(t, newPrinter(cmd).response(sampleResponse()))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Contains(t, out, "result")
	assert.Contains(t, out, "denomination")
}

func TestPrinter_Pretty(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := &printer{w: &buf, pretty: true}

	require.NoError(t, p.response(sampleResponse()))
	out := buf.String()
	assert.Contains(t, out, "200 Withdrawal successful")
	assert.Contains(t, out, "client 7  Ann Smith")
	assert.Contains(t, out, "10000.000")
	assert.Contains(t, out, "2 x 100.00")

	buf.Reset()
	require.NoError(t, p.summary("Rates refreshed", map[string]any{"skipped": 1, "loaded": 4}))
	assert.Equal(t, "Rates refreshed\n  loaded: 4\n  skipped: 1\n", buf.String())
}

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "rates", "report", "balances", "withdraw", "token"})

	cmd, _, err := root.Find([]string{"balances", "foreign"})
	require.NoError(t, err)
	assert.Equal(t, "foreign", cmd.Name())
	assert.NotNil(t, cmd.InheritedFlags().Lookup("client"))
}
