package compliance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"brickgate/internal/audit"
	"brickgate/internal/authorization"
	"brickgate/internal/compliance/metrics"
	"brickgate/internal/compliance/store"
	"brickgate/internal/domain"
	"brickgate/internal/registry"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

// RegistryWriter is the slice of the node client the service needs for
// submissions.
type RegistryWriter interface {
	SubmitRequest(ctx context.Context, wallet id.Address, commitment domain.Commitment) (registry.TxReceipt, error)
}

// SnapshotSource provides the joined registry view per wallet.
type SnapshotSource interface {
	Fetch(ctx context.Context, wallet id.Address) (domain.RegistrySnapshot, error)
	Invalidate(ctx context.Context, wallet id.Address)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Status is the investor-facing verification view for one wallet.
type Status struct {
	State           authorization.State
	Severity        authorization.Severity
	Message         string
	Commitment      domain.Commitment
	CommitmentMatch bool
}

// Service orchestrates validation, hashing, local persistence, and the
// registry submission write.
type Service struct {
	validator      *Validator
	submissions    store.SubmissionStore
	writer         RegistryWriter
	snapshots      SnapshotSource
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	now            func() time.Time
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service.
func New(validator *Validator, submissions store.SubmissionStore, writer RegistryWriter, snapshots SnapshotSource, opts ...Option) *Service {
	s := &Service{
		validator:   validator,
		submissions: submissions,
		writer:      writer,
		snapshots:   snapshots,
		tracer:      otel.Tracer("brickgate/compliance"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the profile, checks required documents, derives the
// commitment, persists the submission locally, and only then writes the KYC
// request to the registry. Any local failure happens before the network call.
func (s *Service) Submit(ctx context.Context, wallet id.Address, profile domain.ComplianceProfile, documents map[domain.DocumentSlot]domain.Document) (domain.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "compliance.Submit",
		trace.WithAttributes(attribute.String("wallet", wallet.Short())))
	defer span.End()

	if result := s.validator.Validate(profile); !result.Valid {
		s.metrics.IncrementSubmission("invalid_profile")
		return domain.Submission{}, dErrors.New(dErrors.CodeValidation, result.Reason.Message())
	}
	if err := CheckDocuments(documents); err != nil {
		s.metrics.IncrementSubmission("missing_documents")
		return domain.Submission{}, err
	}

	commitment, err := Commit(wallet, profile, documents)
	if err != nil {
		s.metrics.IncrementSubmission("error")
		return domain.Submission{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to derive commitment")
	}

	submission := domain.Submission{
		Wallet:      wallet,
		Profile:     profile,
		Documents:   documents,
		Commitment:  commitment,
		SubmittedAt: s.now(),
	}
	if err := s.submissions.Save(ctx, submission); err != nil {
		s.metrics.IncrementSubmission("error")
		return domain.Submission{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store submission")
	}

	receipt, err := s.writer.SubmitRequest(ctx, wallet, commitment)
	if err != nil {
		s.metrics.IncrementSubmission("registry_error")
		return domain.Submission{}, dErrors.Wrap(err, dErrors.CodeRemoteCall, "registry submission failed")
	}
	s.snapshots.Invalidate(ctx, wallet)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "kyc submission recorded",
			"wallet", wallet.Short(),
			"tx_hash", receipt.TxHash,
		)
	}
	s.emitAudit(ctx, audit.Event{
		Action: audit.ActionKYCSubmitted,
		Wallet: wallet,
		TxHash: receipt.TxHash,
	})
	s.metrics.IncrementSubmission("ok")
	return submission, nil
}

// Status resolves the wallet's verification state from the live registry
// snapshot and compares the stored commitment with a freshly recomputed one.
func (s *Service) Status(ctx context.Context, wallet id.Address) (Status, error) {
	ctx, span := s.tracer.Start(ctx, "compliance.Status",
		trace.WithAttributes(attribute.String("wallet", wallet.Short())))
	defer span.End()

	snapshot, err := s.snapshots.Fetch(ctx, wallet)
	if err != nil {
		return Status{}, err
	}

	state := authorization.Resolve(snapshot)
	status := Status{
		State:      state,
		Severity:   authorization.SeverityOf(state),
		Message:    authorization.MessageOf(state),
		Commitment: snapshot.Commitment,
	}
	status.CommitmentMatch = s.commitmentMatches(ctx, wallet, snapshot)
	s.metrics.IncrementStatusCheck()
	return status, nil
}

// ListSubmissions returns every locally known submission, oldest first. Used
// by the admin review queue.
func (s *Service) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	submissions, err := s.submissions.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list submissions")
	}
	return submissions, nil
}

// FindSubmission returns the local submission for a wallet.
func (s *Service) FindSubmission(ctx context.Context, wallet id.Address) (domain.Submission, error) {
	submission, err := s.submissions.Find(ctx, wallet)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Submission{}, dErrors.New(dErrors.CodeNotFound, "no submission for wallet")
		}
		return domain.Submission{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load submission")
	}
	return submission, nil
}

// commitmentMatches recomputes the commitment from the local record so edits
// made after submission surface as a mismatch. No registry request or no
// local record both report false without failing the status call.
func (s *Service) commitmentMatches(ctx context.Context, wallet id.Address, snapshot domain.RegistrySnapshot) bool {
	if !snapshot.RequestExists || snapshot.Commitment.IsZero() {
		return false
	}
	local, err := s.submissions.Find(ctx, wallet)
	if err != nil {
		return false
	}
	recomputed, err := Commit(wallet, local.Profile, local.Documents)
	if err != nil {
		return false
	}
	if recomputed != snapshot.Commitment {
		s.metrics.IncrementIntegrityMismatch()
		if s.logger != nil {
			s.logger.WarnContext(ctx, "commitment integrity mismatch",
				"wallet", wallet.Short(),
			)
		}
		return false
	}
	return true
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
