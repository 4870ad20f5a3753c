package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/money"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type printer struct {
	w      io.Writer
	pretty bool
}

// newPrinter prints colored text on a terminal and JSON everywhere else.
func newPrinter(cmd *cobra.Command) *printer {
	w := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")
	pretty := false
	if f, ok := w.(*os.File); ok && !asJSON {
		pretty = term.IsTerminal(int(f.Fd()))
	}
	return &printer{w: w, pretty: pretty}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) summary(title string, fields map[string]any) error {
	if !p.pretty {
		return p.json(fields)
	}
	color.New(color.FgGreen, color.Bold).Fprintln(p.w, title)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(p.w, "  %s: %v\n", color.CyanString(k), fields[k])
	}
	return nil
}

func amount(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(money.DisplayScale)
}

func (p *printer) account(a atm.PresentedAccount) {
	fmt.Fprintf(p.w, "  %-12d %-6s %-36s %-4s", a.AccountNumber, a.TypeCode, a.TypeDescription, a.CurrencyCode)
	if a.CcyBalance != nil {
		fmt.Fprintf(p.w, " ccy %14s", amount(a.CcyBalance))
	} else {
		fmt.Fprintf(p.w, " bal %14s", amount(a.Balance))
	}
	fmt.Fprintf(p.w, " ref %14s limit %14s\n", amount(a.ZarBalance), amount(a.Limit))
}

func (p *printer) response(resp *atm.Response) error {
	if !p.pretty {
		return p.json(resp)
	}
	status := color.New(color.FgGreen, color.Bold)
	if !resp.Result.Success {
		status = color.New(color.FgRed, color.Bold)
	}
	status.Fprintf(p.w, "%d %s\n", resp.Result.StatusCode, resp.Result.StatusReason)

	if c := resp.Client; c != nil && c.ID != 0 {
		fmt.Fprintf(p.w, "%s %d %s %s %s\n", color.CyanString("client"), c.ID, c.Title, c.Name, c.Surname)
	}
	for _, a := range resp.Accounts {
		p.account(a)
	}
	if resp.Account != nil {
		p.account(*resp.Account)
	}
	for _, n := range resp.Denominations {
		fmt.Fprintf(p.w, "  %s %3d x %s\n", color.YellowString("note"), n.Count, n.Value.StringFixed(2))
	}
	return nil
}
