// Package atm provides the ATM business operations: presenting client balances and
// executing cash withdrawals against a machine's note inventory.
//
// Every operation returns an *atm.Response describing the outcome, including business
// rejections. A non-nil error is returned only for unexpected collaborator faults.
package atm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/atm/pkg/cache"
	"github.com/amirasaad/atm/pkg/config"
	"github.com/amirasaad/atm/pkg/domain"
	"github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/eventbus"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/amirasaad/atm/pkg/trace"
	"github.com/shopspring/decimal"
)

// Service provides the balance and withdrawal operations.
type Service struct {
	uow       repository.UnitOfWork
	rates     cache.RateTable
	bus       eventbus.Bus
	logger    *slog.Logger
	reference string
	overdraft decimal.Decimal
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps) *Service {
	s := &Service{
		uow:       deps.Uow,
		rates:     deps.RateTable,
		bus:       deps.EventBus,
		logger:    deps.Logger,
		reference: atm.ReferenceCurrency,
		overdraft: decimal.Zero,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if deps.Config != nil && deps.Config.Bank != nil {
		if code := strings.TrimSpace(deps.Config.Bank.ReferenceCurrency); code != "" {
			s.reference = code
		}
		s.overdraft = deps.Config.Bank.OverdraftLimit
	}
	s.logger = s.logger.With("component", "atm")
	return s
}

// ReferenceCurrency returns the currency every balance is converted into.
func (s *Service) ReferenceCurrency() string {
	return s.reference
}

func (s *Service) presenter(limits repository.CreditCardLimitRepository) *Presenter {
	return NewPresenter(s.reference, s.overdraft, limits)
}

func (s *Service) snapshot(ctx context.Context) (map[string]atm.CurrencyRate, error) {
	if s.rates == nil {
		return map[string]atm.CurrencyRate{}, nil
	}
	rates, err := s.rates.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("currency rate snapshot: %w", err)
	}
	return rates, nil
}

// GetLocalBalances returns the client's transactional accounts, highest reference balance first.
func (s *Service) GetLocalBalances(ctx context.Context, clientID int64) (*atm.Response, error) {
	return s.balances(ctx, "GetLocalBalances", clientID, atm.ReasonDisplayTransactional,
		func(repo repository.AccountRepository) ([]atm.Account, error) {
			return repo.ListTransactional(ctx, clientID)
		}, RankLocal)
}

// GetForeignBalances returns the client's foreign currency accounts, lowest reference balance first.
func (s *Service) GetForeignBalances(ctx context.Context, clientID int64) (*atm.Response, error) {
	return s.balances(ctx, "GetForeignBalances", clientID, atm.ReasonDisplayForeign,
		func(repo repository.AccountRepository) ([]atm.Account, error) {
			return repo.ListByType(ctx, clientID, atm.AccountTypeForeignCurrency)
		}, RankForeign)
}

func (s *Service) balances(
	ctx context.Context,
	op string,
	clientID int64,
	success atm.Reason,
	list func(repository.AccountRepository) ([]atm.Account, error),
	order func([]atm.PresentedAccount) []atm.PresentedAccount,
) (*atm.Response, error) {
	logger := s.logger.With("op", op, "client_id", clientID, "trace_id", trace.ID(ctx))
	logger.Info(op + " started")

	if !atm.IsValidClientID(clientID) {
		logger.Warn(op + " rejected: invalid client id")
		return atm.NewResponse(atm.ReasonInvalidClient), nil
	}

	clients, err := s.uow.ClientRepository()
	if err != nil {
		logger.Error(op+" failed: ClientRepository error", "error", err)
		return nil, err
	}
	client, err := clients.Get(ctx, clientID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn(op + " rejected: client not found")
		resp := atm.NewResponse(atm.ReasonClientNotFound)
		resp.Client = atm.NewClientView(nil)
		resp.Accounts = []atm.PresentedAccount{}
		return resp, nil
	}
	if err != nil {
		logger.Error(op+" failed: client lookup error", "error", err)
		return nil, err
	}

	resp := &atm.Response{Client: atm.NewClientView(client), Accounts: []atm.PresentedAccount{}}

	accounts, err := s.uow.AccountRepository()
	if err != nil {
		logger.Error(op+" failed: AccountRepository error", "error", err)
		return nil, err
	}
	records, err := list(accounts)
	if err != nil {
		logger.Error(op+" failed: account lookup error", "error", err)
		return nil, err
	}
	limits, err := s.uow.CreditCardLimitRepository()
	if err != nil {
		logger.Error(op+" failed: CreditCardLimitRepository error", "error", err)
		return nil, err
	}
	rates, err := s.snapshot(ctx)
	if err != nil {
		logger.Error(op+" failed: rate snapshot error", "error", err)
		return nil, err
	}

	p := s.presenter(limits)
	presented := make([]atm.PresentedAccount, 0, len(records))
	for _, rec := range records {
		view, err := p.Present(ctx, rec, rates)
		if IsUnpresentable(err) {
			logger.Warn(op+" skipping account", "account", rec.Number, "reason", err)
			continue
		}
		if err != nil {
			logger.Error(op+" failed: presentation error", "account", rec.Number, "error", err)
			return nil, err
		}
		presented = append(presented, *view)
	}

	if len(presented) == 0 {
		logger.Info(op + " completed: no accounts to display")
		resp.Result = atm.NewResult(atm.ReasonNoAccountsToDisplay)
		return resp, nil
	}
	resp.Accounts = order(presented)
	resp.Result = atm.NewResult(success)
	logger.Info(op+" completed", "accounts", len(resp.Accounts))
	return resp, nil
}

func (s *Service) emit(ctx context.Context, e eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("event publish failed", "event", e.Type(), "error", err)
	}
}
