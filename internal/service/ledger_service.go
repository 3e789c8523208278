package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/kaskos/internal/calculator"
	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
	"github.com/mmynk/kaskos/pkg/api"
)

// ReportObserver receives every report the service builds.
type ReportObserver interface {
	ObserveReport(report *calculator.Report, degraded int)
}

// LedgerConfig holds the accounting settings of a deployment.
type LedgerConfig struct {
	Schedule calculator.Schedule
	Mode     calculator.Mode // default report mode
	Location *time.Location  // period and day boundaries

	// StoreTimeout bounds each store call. Zero means no extra deadline.
	StoreTimeout time.Duration
}

// LedgerService implements the LedgerService RPC interface.
type LedgerService struct {
	store    storage.Store
	cfg      LedgerConfig
	observer ReportObserver
	logger   *slog.Logger
	now      func() time.Time
}

// LedgerOption customizes a LedgerService.
type LedgerOption func(*LedgerService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) { s.now = now }
}

// WithReportObserver registers an observer, usually the metrics collector.
func WithReportObserver(o ReportObserver) LedgerOption {
	return func(s *LedgerService) { s.observer = o }
}

// NewLedgerService creates a LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, cfg LedgerConfig, logger *slog.Logger, opts ...LedgerOption) *LedgerService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Mode == "" {
		cfg.Mode = calculator.ModeLifetime
	}
	s := &LedgerService{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LedgerService) clock() time.Time {
	return s.now().In(s.cfg.Location)
}

func (s *LedgerService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}

// RecordContribution stores a payment into the fund. Members record their
// own payments; admins may record on behalf of any roster member.
func (s *LedgerService) RecordContribution(ctx context.Context, req *connect.Request[api.RecordContributionRequest]) (*connect.Response[api.RecordContributionResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	member := strings.TrimSpace(req.Msg.Member)
	if member == "" {
		member = session.Name
	}
	if member != session.Name && !session.IsAdmin() {
		s.logger.Warn("Rejected contribution for another member", "member", session.Name, "target", member)
		return nil, connect.NewError(connect.CodePermissionDenied, errOwnPaymentOnly)
	}

	c := models.NewContribution(member, req.Msg.Amount, req.Msg.Note, s.clock())
	if err := c.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	if member != session.Name {
		if _, err := s.store.GetMember(ctx, member); err != nil {
			s.logger.Warn("Contribution for unknown member", "member", session.Name, "target", member, "error", err)
			return nil, toConnectError(err)
		}
	}

	if err := s.store.InsertContribution(ctx, c); err != nil {
		s.logger.Error("Failed to record contribution", "member", member, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Contribution recorded",
		"id", c.ID,
		"member", member,
		"amount", c.Amount,
		"period", c.Period.String(),
		"recorded_by", session.Name,
	)
	return connect.NewResponse(&api.RecordContributionResponse{
		Contribution: contributionToAPI(c),
	}), nil
}

// RecordExpenditure stores money spent from the fund. Admin only.
func (s *LedgerService) RecordExpenditure(ctx context.Context, req *connect.Request[api.RecordExpenditureRequest]) (*connect.Response[api.RecordExpenditureResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		return nil, connect.NewError(connect.CodePermissionDenied, errAdminOnly)
	}

	now := s.clock()
	e := &models.Expenditure{
		Item:       strings.TrimSpace(req.Msg.Item),
		Amount:     req.Msg.Amount,
		RecordedBy: session.Name,
		CreatedAt:  now,
	}
	if req.Msg.PurchasedOn != "" {
		purchasedOn, err := time.ParseInLocation(api.DateLayout, req.Msg.PurchasedOn, s.cfg.Location)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		e.PurchasedOn = purchasedOn
	}
	if err := e.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.store.InsertExpenditure(ctx, e); err != nil {
		s.logger.Error("Failed to record expenditure", "item", e.Item, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expenditure recorded", "id", e.ID, "item", e.Item, "amount", e.Amount, "member", session.Name)
	return connect.NewResponse(&api.RecordExpenditureResponse{
		Expenditure: expenditureToAPI(e, s.cfg.Location),
	}), nil
}

// ListContributions returns the contribution history, most recent first.
func (s *LedgerService) ListContributions(ctx context.Context, req *connect.Request[api.ListContributionsRequest]) (*connect.Response[api.ListContributionsResponse], error) {
	if _, err := requireSession(ctx); err != nil {
		return nil, err
	}

	var period models.Period
	if req.Msg.Period != "" {
		p, err := models.ParsePeriod(req.Msg.Period)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		period = p
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	contributions, err := storage.Contributions(ctx, s.store, strings.TrimSpace(req.Msg.Member), period, s.clock(), s.cfg.Location)
	if err != nil {
		s.logger.Error("Failed to list contributions", "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.ListContributionsResponse{Contributions: make([]*api.Contribution, 0, len(contributions))}
	for _, c := range contributions {
		resp.Contributions = append(resp.Contributions, contributionToAPI(c))
	}
	return connect.NewResponse(resp), nil
}

// ListExpenditures returns all expenditures, most recent purchase first.
func (s *LedgerService) ListExpenditures(ctx context.Context, req *connect.Request[api.ListExpendituresRequest]) (*connect.Response[api.ListExpendituresResponse], error) {
	if _, err := requireSession(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	expenditures, err := storage.Expenditures(ctx, s.store, s.clock())
	if err != nil {
		s.logger.Error("Failed to list expenditures", "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.ListExpendituresResponse{Expenditures: make([]*api.Expenditure, 0, len(expenditures))}
	for _, e := range expenditures {
		resp.Expenditures = append(resp.Expenditures, expenditureToAPI(e, s.cfg.Location))
	}
	return connect.NewResponse(resp), nil
}

// ListMembers returns the roster sorted by name.
func (s *LedgerService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	if _, err := requireSession(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	members, err := s.store.ListMembers(ctx)
	if err != nil {
		s.logger.Error("Failed to list members", "error", err)
		return nil, toConnectError(err)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

	resp := &api.ListMembersResponse{Members: make([]*api.Member, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, memberToAPI(m))
	}
	return connect.NewResponse(resp), nil
}

// GetReport pulls a fresh snapshot and computes balances and cash flow.
func (s *LedgerService) GetReport(ctx context.Context, req *connect.Request[api.GetReportRequest]) (*connect.Response[api.GetReportResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	mode := s.cfg.Mode
	if req.Msg.Mode != "" {
		m, err := calculator.ParseMode(req.Msg.Mode)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		mode = m
	}

	var period models.Period
	if req.Msg.Period != "" {
		p, err := models.ParsePeriod(req.Msg.Period)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		period = p
	}

	now := s.clock()
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	snap, err := storage.LoadSnapshot(storeCtx, s.store, now, s.cfg.Location)
	if err != nil {
		s.logger.Error("Failed to load snapshot", "error", err)
		return nil, toConnectError(err)
	}
	if snap.Degraded > 0 {
		s.logger.Warn("Snapshot contained incomplete records", "degraded", snap.Degraded)
	}

	report, err := calculator.Build(snap, calculator.Options{
		Mode:     mode,
		Schedule: s.cfg.Schedule,
		Period:   period,
		Now:      now,
		Location: s.cfg.Location,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if len(report.Unrostered) > 0 {
		s.logger.Warn("Contributions from members not on the roster", "names", report.Unrostered)
	}
	if s.observer != nil {
		s.observer.ObserveReport(report, snap.Degraded)
	}

	s.logger.Debug("Report built",
		"member", session.Name,
		"mode", report.Mode,
		"period", report.Period.String(),
		"cash_position", report.Aggregate.CashPosition,
	)
	return connect.NewResponse(reportToAPI(report, s.cfg.Location)), nil
}
