package admin

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"brickgate/internal/admin/metrics"
	"brickgate/internal/audit"
	"brickgate/internal/authorization"
	"brickgate/internal/domain"
	"brickgate/internal/registry"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

// queueFetchLimit caps concurrent snapshot reads while building the review
// queue.
const queueFetchLimit = 8

// RegistryAdmin is the slice of the node client used by admin actions.
type RegistryAdmin interface {
	ApproveRequest(ctx context.Context, wallet id.Address) (registry.TxReceipt, error)
	RejectRequest(ctx context.Context, wallet id.Address) (registry.TxReceipt, error)
	VerifyInvestor(ctx context.Context, wallet id.Address) (registry.TxReceipt, error)
	RevokeInvestor(ctx context.Context, wallet id.Address) (registry.TxReceipt, error)
	Owner(ctx context.Context) (id.Address, error)
}

// SnapshotSource provides the joined registry view per wallet.
type SnapshotSource interface {
	Fetch(ctx context.Context, wallet id.Address) (domain.RegistrySnapshot, error)
	Invalidate(ctx context.Context, wallet id.Address)
}

// SubmissionLister lists the locally stored submissions for the queue.
type SubmissionLister interface {
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service routes composite admin actions. Each action is a fixed ordered
// sequence of registry writes with a legality guard on the current state; the
// writes are sequential and never atomic.
type Service struct {
	client         RegistryAdmin
	snapshots      SnapshotSource
	submissions    SubmissionLister
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(client RegistryAdmin, snapshots SnapshotSource, submissions SubmissionLister, opts ...Option) *Service {
	s := &Service{
		client:      client,
		snapshots:   snapshots,
		submissions: submissions,
		tracer:      otel.Tracer("brickgate/admin"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequireAdmin gates administrator-only operations: the caller must be the
// identity registry owner, compared case-insensitively.
func (s *Service) RequireAdmin(ctx context.Context, caller id.Address) error {
	if caller.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "wallet address required")
	}
	owner, err := s.client.Owner(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeRemoteCall, "failed to read registry owner")
	}
	if !caller.Equal(owner) {
		return dErrors.New(dErrors.CodeForbidden, "caller is not the registry owner")
	}
	return nil
}

// step is one registry write inside a composite action.
type step struct {
	name Step
	run  func(ctx context.Context, wallet id.Address) (registry.TxReceipt, error)
}

// ApproveAndWhitelist approves the KYC request then verifies the investor.
// Legal from Pending or Rejected.
func (s *Service) ApproveAndWhitelist(ctx context.Context, actor, wallet id.Address) (ApplyReport, error) {
	return s.apply(ctx, actor, wallet, ActionApproveAndWhitelist, audit.ActionKYCApproved,
		[]authorization.State{authorization.Pending, authorization.Rejected},
		[]step{
			{StepApproveRequest, s.client.ApproveRequest},
			{StepVerifyInvestor, s.client.VerifyInvestor},
		})
}

// RejectAndRevoke rejects the KYC request then revokes the whitelist entry.
// Legal from any state with a registry record.
func (s *Service) RejectAndRevoke(ctx context.Context, actor, wallet id.Address) (ApplyReport, error) {
	return s.apply(ctx, actor, wallet, ActionRejectAndRevoke, audit.ActionKYCRejected,
		[]authorization.State{
			authorization.Pending,
			authorization.Rejected,
			authorization.ApprovedFrozen,
			authorization.ApprovedVerified,
		},
		[]step{
			{StepRejectRequest, s.client.RejectRequest},
			{StepRevokeInvestor, s.client.RevokeInvestor},
		})
}

// Freeze revokes the whitelist entry while leaving the approval in place.
// Legal from ApprovedVerified only.
func (s *Service) Freeze(ctx context.Context, actor, wallet id.Address) (ApplyReport, error) {
	return s.apply(ctx, actor, wallet, ActionFreeze, audit.ActionKYCFrozen,
		[]authorization.State{authorization.ApprovedVerified},
		[]step{
			{StepRevokeInvestor, s.client.RevokeInvestor},
		})
}

// ReWhitelist restores the whitelist entry for a frozen approval without a
// new approval decision. Legal from ApprovedFrozen only.
func (s *Service) ReWhitelist(ctx context.Context, actor, wallet id.Address) (ApplyReport, error) {
	return s.apply(ctx, actor, wallet, ActionReWhitelist, audit.ActionKYCReWhitelisted,
		[]authorization.State{authorization.ApprovedFrozen},
		[]step{
			{StepVerifyInvestor, s.client.VerifyInvestor},
		})
}

func (s *Service) apply(ctx context.Context, actor, wallet id.Address, action Action, auditAction audit.Action, legalFrom []authorization.State, steps []step) (ApplyReport, error) {
	ctx, span := s.tracer.Start(ctx, "admin."+string(action),
		trace.WithAttributes(attribute.String("wallet", wallet.Short())))
	defer span.End()

	report := ApplyReport{Action: action, Outcome: NotApplied}

	snapshot, err := s.snapshots.Fetch(ctx, wallet)
	if err != nil {
		return report, err
	}
	state := authorization.Resolve(snapshot)
	if !legal(state, legalFrom) {
		s.metrics.IncrementAction(string(action), "illegal")
		return report, dErrors.New(dErrors.CodeIllegalTransition,
			fmt.Sprintf("%s is not allowed from state %s", action, state))
	}

	for i, st := range steps {
		receipt, err := st.run(ctx, wallet)
		if err != nil {
			report.FailedStep = st.name
			if i > 0 {
				report.Outcome = PartiallyApplied
			}
			s.finish(ctx, actor, wallet, auditAction, report)
			if report.Outcome == PartiallyApplied {
				return report, dErrors.WrapAs(err, dErrors.CodePartiallyApplied,
					fmt.Sprintf("%s failed at %s after a prior write", action, st.name))
			}
			return report, dErrors.Wrap(err, dErrors.CodeRemoteCall,
				fmt.Sprintf("%s failed at %s", action, st.name))
		}
		report.Receipts = append(report.Receipts, receipt)
	}

	report.Outcome = FullyApplied
	s.finish(ctx, actor, wallet, auditAction, report)
	return report, nil
}

// finish invalidates the snapshot cache if anything was written, emits the
// audit event, and records metrics. Called on every exit path past the guard.
func (s *Service) finish(ctx context.Context, actor, wallet id.Address, auditAction audit.Action, report ApplyReport) {
	if len(report.Receipts) > 0 {
		s.snapshots.Invalidate(ctx, wallet)
	}
	s.metrics.IncrementAction(string(report.Action), string(report.Outcome))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "admin action applied",
			"action", report.Action,
			"outcome", report.Outcome,
			"wallet", wallet.Short(),
			"actor", actor.Short(),
		)
	}
	if s.auditPublisher == nil {
		return
	}
	event := audit.Event{
		Action:  auditAction,
		Wallet:  wallet,
		Actor:   actor,
		Outcome: string(report.Outcome),
	}
	if report.FailedStep != "" {
		event.Reason = "failed at " + string(report.FailedStep)
	}
	if len(report.Receipts) > 0 {
		event.TxHash = report.Receipts[len(report.Receipts)-1].TxHash
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

// ReviewQueue joins every locally known submission with its live registry
// state, snapshots fetched concurrently.
func (s *Service) ReviewQueue(ctx context.Context) (Queue, error) {
	ctx, span := s.tracer.Start(ctx, "admin.ReviewQueue")
	defer span.End()

	submissions, err := s.submissions.ListSubmissions(ctx)
	if err != nil {
		return Queue{}, err
	}

	entries := make([]QueueEntry, len(submissions))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(queueFetchLimit)
	for i, submission := range submissions {
		group.Go(func() error {
			snapshot, err := s.snapshots.Fetch(groupCtx, submission.Wallet)
			if err != nil {
				return err
			}
			state := authorization.Resolve(snapshot)
			entries[i] = QueueEntry{
				Wallet:      submission.Wallet,
				SubmittedAt: submission.SubmittedAt,
				Commitment:  submission.Commitment,
				State:       state,
				Severity:    authorization.SeverityOf(state),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Queue{}, err
	}

	var queue Queue
	for _, entry := range entries {
		switch entry.State {
		case authorization.Rejected:
			queue.Rejected = append(queue.Rejected, entry)
		case authorization.ApprovedFrozen, authorization.ApprovedVerified:
			queue.Approved = append(queue.Approved, entry)
		default:
			queue.Pending = append(queue.Pending, entry)
		}
	}
	return queue, nil
}

func legal(state authorization.State, from []authorization.State) bool {
	for _, s := range from {
		if state == s {
			return true
		}
	}
	return false
}
