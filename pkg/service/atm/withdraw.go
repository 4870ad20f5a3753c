package atm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/atm/pkg/dispense"
	"github.com/amirasaad/atm/pkg/domain"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/domain/events"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/amirasaad/atm/pkg/trace"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawRequest identifies a cash withdrawal.
type WithdrawRequest struct {
	ClientID      int64
	AtmID         int64
	AccountNumber string
	Amount        decimal.Decimal
}

// persistence stages of a withdrawal, used to classify a failed transaction.
type stage int

const (
	stageRead stage = iota
	stageAllocations
	stageBalance
	stagePresent
	stageCommit
)

// Withdraw dispenses req.Amount from the ATM and debits the account.
//
// The allocation counts and the account balance are written in one transaction.
// A failing write is reported as GeneralError before the balance write and as
// BalanceWriteFailed from the balance write on; both roll back. A failure presenting
// the updated account also rolls back and is reported as GeneralError.
func (s *Service) Withdraw(ctx context.Context, req WithdrawRequest) (*atm.Response, error) {
	resp, err := s.withdraw(ctx, req)
	if resp != nil {
		resp.View = atm.ViewWithdrawal
	}
	return resp, err
}

func (s *Service) withdraw(ctx context.Context, req WithdrawRequest) (*atm.Response, error) {
	traceID := trace.ID(ctx)
	logger := s.logger.With(
		"op", "Withdraw",
		"client_id", req.ClientID,
		"atm_id", req.AtmID,
		"account", req.AccountNumber,
		"amount", req.Amount.String(),
		"trace_id", traceID,
	)
	logger.Info("Withdraw started")

	switch {
	case !atm.IsValidClientID(req.ClientID):
		logger.Warn("Withdraw rejected: invalid client id")
		return atm.NewResponse(atm.ReasonInvalidClient), nil
	case strings.TrimSpace(req.AccountNumber) == "":
		logger.Warn("Withdraw rejected: invalid account number")
		return atm.NewResponse(atm.ReasonInvalidAccount), nil
	case !req.Amount.IsPositive():
		logger.Warn("Withdraw rejected: invalid amount")
		return atm.NewResponse(atm.ReasonInvalidAmount), nil
	}

	atms, err := s.uow.AtmRepository()
	if err != nil {
		logger.Error("Withdraw failed: AtmRepository error", "error", err)
		return nil, err
	}
	exists, err := atms.Exists(ctx, req.AtmID)
	if err != nil {
		logger.Error("Withdraw failed: ATM lookup error", "error", err)
		return nil, err
	}
	if !exists {
		logger.Warn("Withdraw rejected: ATM not found")
		return atm.NewResponse(atm.ReasonAtmNotFound), nil
	}

	clients, err := s.uow.ClientRepository()
	if err != nil {
		logger.Error("Withdraw failed: ClientRepository error", "error", err)
		return nil, err
	}
	client, err := clients.Get(ctx, req.ClientID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Withdraw rejected: client not found")
		return atm.NewResponse(atm.ReasonClientNotFound), nil
	}
	if err != nil {
		logger.Error("Withdraw failed: client lookup error", "error", err)
		return nil, err
	}

	rates, err := s.snapshot(ctx)
	if err != nil {
		logger.Error("Withdraw failed: rate snapshot error", "error", err)
		return nil, err
	}

	resp := &atm.Response{Client: atm.NewClientView(client)}
	var (
		current  = stageRead
		plan     *dispense.Plan
		newBal   decimal.Decimal
		accepted bool
	)
	err = s.uow.Do(ctx, func(tx repository.UnitOfWork) error {
		accounts, err := tx.AccountRepository()
		if err != nil {
			return err
		}
		limits, err := tx.CreditCardLimitRepository()
		if err != nil {
			return err
		}
		allocations, err := tx.AllocationRepository()
		if err != nil {
			return err
		}
		p := s.presenter(limits)

		acc, err := accounts.GetTransactional(ctx, req.ClientID, req.AccountNumber)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Withdraw rejected: account not found")
			resp.Result = atm.NewResult(atm.ReasonAccountNotFound)
			return nil
		}
		if err != nil {
			return fmt.Errorf("account lookup: %w", err)
		}
		if !acc.Balance.Valid {
			logger.Warn("Withdraw rejected: account has no balance")
			resp.Result = atm.NewResult(atm.ReasonNoAccountsToDisplay)
			return nil
		}

		available := acc.Balance.Decimal
		if acc.IsType(atm.AccountTypeCheque) {
			available = available.Add(s.overdraft)
		}
		if available.LessThan(req.Amount) {
			logger.Warn("Withdraw rejected: insufficient funds", "available", available.String())
			if resp.Account, err = s.present(ctx, p, *acc, rates); err != nil {
				return err
			}
			resp.Result = atm.NewResult(atm.ReasonInsufficientFunds)
			return nil
		}

		allocs, err := allocations.ListByAtm(ctx, req.AtmID)
		if err != nil {
			return fmt.Errorf("allocation lookup: %w", err)
		}
		if len(allocs) == 0 {
			logger.Warn("Withdraw rejected: ATM not funded")
			resp.Result = atm.NewResult(atm.ReasonAtmNotFunded)
			return nil
		}

		plan, err = dispense.Dispense(dispense.NewInventory(allocs), req.Amount)
		var failure *dispense.Failure
		if errors.As(err, &failure) {
			logger.Warn("Withdraw rejected: cannot dispense", "reason", failure.Reason().String())
			if resp.Account, err = s.present(ctx, p, *acc, rates); err != nil {
				return err
			}
			resp.Denominations = []atm.DispensedNote{}
			resp.Result = atm.NewResultWithMessage(failure.Reason(), failure.Message())
			return nil
		}
		if err != nil {
			return err
		}

		current = stageAllocations
		if err := allocations.UpdateCounts(ctx, req.AtmID, plan.Updates); err != nil {
			return fmt.Errorf("allocation update: %w", err)
		}
		current = stageBalance
		newBal = acc.Balance.Decimal.Sub(req.Amount)
		if err := accounts.UpdateBalance(ctx, req.ClientID, req.AccountNumber, newBal); err != nil {
			return fmt.Errorf("balance update: %w", err)
		}
		current = stagePresent

		updated := acc.WithBalance(newBal)
		if resp.Account, err = s.present(ctx, p, updated, rates); err != nil {
			return err
		}
		current = stageCommit
		accepted = true
		return nil
	})

	if err != nil {
		switch current {
		case stageRead:
			logger.Error("Withdraw failed: transaction error", "error", err)
			return nil, err
		case stageAllocations:
			logger.Error("Withdraw failed: allocation write error", "error", err)
			return &atm.Response{Client: resp.Client, Result: atm.NewResult(atm.ReasonGeneralError)}, nil
		case stagePresent:
			logger.Error("Withdraw failed: account view error, writes rolled back", "error", err)
			return &atm.Response{Client: resp.Client, Result: atm.NewResult(atm.ReasonGeneralError)}, nil
		default:
			err = fmt.Errorf("%w: %w", domain.ErrIntegrity, err)
			logger.Error("Withdraw failed: balance write error", "integrity_alert", true, "error", err)
			return &atm.Response{Client: resp.Client, Result: atm.NewResult(atm.ReasonBalanceWriteFailed)}, nil
		}
	}
	if !accepted {
		return resp, nil
	}

	resp.Denominations = plan.Notes
	resp.Result = atm.NewResult(atm.ReasonWithdrawalSuccessful)
	logger.Info("Withdraw completed", "new_balance", newBal.String(), "notes", len(plan.Notes))

	s.emit(ctx, &events.WithdrawalDispensed{
		ID:            uuid.New(),
		TraceID:       traceID,
		ClientID:      req.ClientID,
		AtmID:         req.AtmID,
		AccountNumber: req.AccountNumber,
		Amount:        req.Amount,
		NewBalance:    newBal,
		Notes:         plan.Notes,
		Timestamp:     time.Now().UTC(),
	})
	return resp, nil
}

// present renders acc for a response, leaving the view empty when the record is incomplete.
func (s *Service) present(
	ctx context.Context,
	p *Presenter,
	acc atm.Account,
	rates map[string]atm.CurrencyRate,
) (*atm.PresentedAccount, error) {
	view, err := p.Present(ctx, acc, rates)
	if IsUnpresentable(err) {
		s.logger.Warn("account view unavailable", "account", acc.Number, "reason", err)
		return nil, nil
	}
	return view, err
}
