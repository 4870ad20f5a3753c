package main

import (
	"context"
	"fmt"
	"time"

	"github.com/amirasaad/atm/infra"
	"github.com/amirasaad/atm/infra/initializer"
	"github.com/amirasaad/atm/pkg/app"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/middleware"
	atmsvc "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/amirasaad/atm/pkg/trace"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// withApp builds the app, loads the rate table when it was never filled, and runs fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	a := app.New(deps)
	ctx, _ := trace.Ensure(cmd.Context())
	if updated, err := deps.RateTable.LastUpdated(ctx); err == nil && updated.IsZero() {
		if _, err := a.RateRefresher.Refresh(ctx); err != nil {
			return fmt.Errorf("rate table refresh: %w", err)
		}
	}
	return fn(ctx, a)
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Apply or revert the database schema"}
	for _, dir := range []infra.Direction{infra.Up, infra.Down} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(dir),
			Short: fmt.Sprintf("Run every migration %s", dir),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				logger := initializer.SetupLogger(cfg.Log)
				db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
				if err != nil {
					return err
				}
				if sqlDB, err := db.DB(); err == nil {
					defer sqlDB.Close()
				}
				logger.Info("Migration started", "direction", dir)
				if err := infra.RunMigrations(db, dir); err != nil {
					logger.Error("Migration failed", "direction", dir, "error", err)
					return err
				}
				logger.Info("Migration completed", "direction", dir)
				return nil
			},
		})
	}
	return cmd
}

func newRatesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "rates", Short: "Manage the currency rate table"}
	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Reload every stored conversion rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cleanup, err := initializer.InitializeDependencies(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			summary, err := app.New(deps).RateRefresher.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return newPrinter(cmd).summary("Rates refreshed", map[string]any{
				"loaded": summary.Loaded, "skipped": summary.Skipped,
			})
		},
	})
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "report", Short: "Write the month-end reports"}
	reports := []struct {
		use   string
		short string
		write func(ctx context.Context, a *app.App) (string, error)
	}{
		{"transactional", "Highest transactional balance per client", func(ctx context.Context, a *app.App) (string, error) {
			return a.ReportService.WriteTransactionalBalances(ctx)
		}},
		{"position", "Aggregate financial position per client", func(ctx context.Context, a *app.App) (string, error) {
			return a.ReportService.WriteFinancialPositions(ctx)
		}},
	}
	for _, r := range reports {
		cmd.AddCommand(&cobra.Command{
			Use:   r.use,
			Short: r.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					path, err := r.write(ctx, a)
					if err != nil {
						return err
					}
					return newPrinter(cmd).summary("Report written", map[string]any{"path": path})
				})
			},
		})
	}
	return cmd
}

func newBalancesCmd() *cobra.Command {
	var clientID int64
	cmd := &cobra.Command{Use: "balances", Short: "Show the balances of a client"}
	cmd.PersistentFlags().Int64Var(&clientID, "client", 0, "client id")

	views := []struct {
		use   string
		short string
		query func(s *atmsvc.Service) func(context.Context, int64) (*atm.Response, error)
	}{
		{"local", "Transactional accounts, highest balance first", func(s *atmsvc.Service) func(context.Context, int64) (*atm.Response, error) {
			return s.GetLocalBalances
		}},
		{"foreign", "Foreign currency accounts, lowest balance first", func(s *atmsvc.Service) func(context.Context, int64) (*atm.Response, error) {
			return s.GetForeignBalances
		}},
	}
	for _, v := range views {
		cmd.AddCommand(&cobra.Command{
			Use:   v.use,
			Short: v.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					resp, err := v.query(a.AtmService)(ctx, clientID)
					if err != nil {
						return err
					}
					return newPrinter(cmd).response(resp)
				})
			},
		})
	}
	return cmd
}

func newWithdrawCmd() *cobra.Command {
	var (
		req    atmsvc.WithdrawRequest
		amount string
	)
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw cash from an ATM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Amount, _ = decimal.NewFromString(amount)
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				resp, err := a.AtmService.Withdraw(ctx, req)
				if err != nil {
					return err
				}
				return newPrinter(cmd).response(resp)
			})
		},
	}
	cmd.Flags().Int64Var(&req.ClientID, "client", 0, "client id")
	cmd.Flags().Int64Var(&req.AtmID, "atm", 0, "atm id")
	cmd.Flags().StringVar(&req.AccountNumber, "account", "", "account number")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to withdraw")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := ""
			if cfg.Auth != nil {
				secret = cfg.Auth.JwtSecret
			}
			token, err := middleware.IssueToken(secret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
