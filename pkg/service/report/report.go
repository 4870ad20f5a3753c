// Package report writes the month-end account reports.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/atm/pkg/domain/events"
	"github.com/amirasaad/atm/pkg/eventbus"
	"github.com/amirasaad/atm/pkg/money"
	"github.com/amirasaad/atm/pkg/repository"
	"github.com/google/uuid"
)

const (
	// TransactionalBalance names the highest transactional balance per client report.
	TransactionalBalance = "transactional_account_balance_report"
	// FinancialPosition names the aggregate financial position per client report.
	FinancialPosition = "client_aggregate_financial_position_report"

	timestampLayout = "20060102_150405"
	separator       = ", "
)

var (
	transactionalHeader = []string{
		"Client Id", "Client Surname", "Client Account Number", "Account Description", "Display Balance",
	}
	positionHeader = []string{"Client", "Loan Balance", "Transactional Balance", "Net Position"}
)

// Service renders report rows into text files under a directory.
type Service struct {
	uow    repository.UnitOfWork
	dir    string
	bus    eventbus.Bus
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time used to name report files.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a report Service writing into dir. bus may be nil.
func NewService(
	uow repository.UnitOfWork,
	dir string,
	bus eventbus.Bus,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		uow:    uow,
		dir:    dir,
		bus:    bus,
		logger: logger.With("component", "report"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WriteTransactionalBalances writes the highest transactional balance of every client
// and returns the file path.
func (s *Service) WriteTransactionalBalances(ctx context.Context) (string, error) {
	repo, err := s.uow.ReportRepository()
	if err != nil {
		return "", err
	}
	rows, err := repo.HighestTransactionalBalances(ctx)
	if err != nil {
		s.logger.Error("WriteTransactionalBalances failed: query error", "error", err)
		return "", fmt.Errorf("query %s: %w", TransactionalBalance, err)
	}
	lines := make([][]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, []string{
			strconv.FormatInt(r.ClientID, 10),
			r.ClientSurname,
			r.AccountNumber,
			r.AccountDescription,
			r.DisplayBalance.StringFixed(money.DisplayScale),
		})
	}
	return s.write(ctx, TransactionalBalance, transactionalHeader, lines)
}

// WriteFinancialPositions writes every client's loan and transactional totals and returns the file path.
func (s *Service) WriteFinancialPositions(ctx context.Context) (string, error) {
	repo, err := s.uow.ReportRepository()
	if err != nil {
		return "", err
	}
	rows, err := repo.ClientFinancialPositions(ctx)
	if err != nil {
		s.logger.Error("WriteFinancialPositions failed: query error", "error", err)
		return "", fmt.Errorf("query %s: %w", FinancialPosition, err)
	}
	lines := make([][]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, []string{
			r.Client,
			r.LoanBalance.StringFixed(money.DisplayScale),
			r.TransactionalBalance.StringFixed(money.DisplayScale),
			r.NetPosition().StringFixed(money.DisplayScale),
		})
	}
	return s.write(ctx, FinancialPosition, positionHeader, lines)
}

// WriteAll writes both reports, stopping at the first failure.
func (s *Service) WriteAll(ctx context.Context) error {
	if _, err := s.WriteTransactionalBalances(ctx); err != nil {
		return err
	}
	_, err := s.WriteFinancialPositions(ctx)
	return err
}

func (s *Service) write(ctx context.Context, name string, header []string, lines [][]string) (string, error) {
	logger := s.logger.With("report", name)
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		logger.Error("report failed: cannot create directory", "dir", s.dir, "error", err)
		return "", fmt.Errorf("create report dir: %w", err)
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, separator))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(strings.Join(l, separator))
		b.WriteString("\n")
	}

	path := filepath.Join(s.dir, name+"_"+s.now().Format(timestampLayout)+".txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		logger.Error("report failed: cannot write file", "path", path, "error", err)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("report written", "path", path, "rows", len(lines))

	if s.bus != nil {
		e := &events.ReportWritten{
			ID:        uuid.New(),
			Report:    name,
			Path:      path,
			Rows:      len(lines),
			Timestamp: time.Now().UTC(),
		}
		if err := s.bus.Emit(ctx, e); err != nil {
			logger.Warn("event publish failed", "event", e.Type(), "error", err)
		}
	}
	return path, nil
}
