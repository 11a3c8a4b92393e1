package purchase

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"brickgate/internal/audit"
	"brickgate/internal/authorization"
	"brickgate/internal/domain"
	"brickgate/internal/purchase/metrics"
	"brickgate/internal/registry"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

// SaleReader is the slice of the node client used by the purchase flow.
// Token info must be read first; the sale address comes from it, so the sale
// reads are sequenced behind it.
type SaleReader interface {
	TokenInfo(ctx context.Context, token id.Address) (domain.TokenInfo, error)
	PriceUnitsPerToken(ctx context.Context, sale id.Address) (string, error)
	SaleActive(ctx context.Context, sale id.Address) (bool, error)
	BuyTokens(ctx context.Context, sale id.Address, wallet id.Address, paymentUnits string) (registry.TxReceipt, error)
}

// SnapshotSource provides the joined registry view per wallet.
type SnapshotSource interface {
	Fetch(ctx context.Context, wallet id.Address) (domain.RegistrySnapshot, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Confirmation is a submitted purchase. No local state is mutated on
// acceptance; supply and ownership truth lives in the contracts.
type Confirmation struct {
	Order  domain.PurchaseOrder
	TxHash string
}

// Service sequences the reads feeding the precondition chain and submits the
// buy transaction.
type Service struct {
	reader         SaleReader
	snapshots      SnapshotSource
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
func New(reader SaleReader, snapshots SnapshotSource, opts ...Option) *Service {
	s := &Service{
		reader:    reader,
		snapshots: snapshots,
		tracer:    otel.Tracer("brickgate/purchase"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Purchase resolves the wallet's authorization state, reads the sale
// snapshot, runs the precondition chain, and submits the buy transaction
// carrying the exact computed payment.
func (s *Service) Purchase(ctx context.Context, wallet, token id.Address, partsRequested uint64) (Confirmation, error) {
	ctx, span := s.tracer.Start(ctx, "purchase.Purchase",
		trace.WithAttributes(
			attribute.String("wallet", wallet.Short()),
			attribute.String("token", token.Short()),
		))
	defer span.End()

	// The wallet check is first in the chain and purely local; an anonymous
	// call must cost no remote reads.
	if wallet.IsZero() {
		pErr := failure(WalletNotConnected)
		s.metrics.IncrementAttempt(string(pErr.Code))
		return Confirmation{}, dErrors.Wrap(pErr, dErrors.CodePurchasePrecondition, "purchase precondition failed")
	}

	snapshot, err := s.snapshots.Fetch(ctx, wallet)
	if err != nil {
		return Confirmation{}, err
	}
	state := authorization.Resolve(snapshot)

	info, err := s.reader.TokenInfo(ctx, token)
	if err != nil {
		return Confirmation{}, dErrors.Wrap(err, dErrors.CodeRemoteCall, "failed to read token")
	}
	sale := s.saleSnapshot(ctx, info.SaleContract)

	order, pErr := Attempt(wallet, token, partsRequested, state, sale)
	if pErr != nil {
		s.metrics.IncrementAttempt(string(pErr.Code))
		return Confirmation{}, dErrors.Wrap(pErr, dErrors.CodePurchasePrecondition, "purchase precondition failed")
	}

	start := time.Now()
	receipt, err := s.reader.BuyTokens(ctx, order.SaleContract, wallet, order.RequiredPaymentUnits.String())
	if err != nil {
		s.metrics.IncrementAttempt("buy_failed")
		return Confirmation{}, dErrors.Wrap(err, dErrors.CodeRemoteCall, "buy transaction failed")
	}
	s.metrics.ObserveBuyDuration(time.Since(start))
	s.metrics.IncrementAttempt("ok")

	if s.logger != nil {
		s.logger.InfoContext(ctx, "purchase submitted",
			"wallet", wallet.Short(),
			"token", token.Short(),
			"parts", order.PartsRequested,
			"payment_units", order.RequiredPaymentUnits.String(),
			"tx_hash", receipt.TxHash,
		)
	}
	s.emitAudit(ctx, audit.Event{
		Action: audit.ActionPurchase,
		Wallet: wallet,
		Token:  token,
		TxHash: receipt.TxHash,
	})
	return Confirmation{Order: order, TxHash: receipt.TxHash}, nil
}

// saleSnapshot reads the sale contract state. Price and activity are
// independent reads issued concurrently; any read failure marks the snapshot
// unreadable instead of failing the attempt, so the chain reports it as the
// SaleUnreadable precondition.
func (s *Service) saleSnapshot(ctx context.Context, sale id.Address) domain.SaleSnapshot {
	if sale.IsZero() {
		return domain.SaleSnapshot{}
	}
	snapshot := domain.SaleSnapshot{SaleContract: sale}

	var (
		priceRaw string
		active   bool
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		priceRaw, err = s.reader.PriceUnitsPerToken(groupCtx, sale)
		return err
	})
	group.Go(func() error {
		var err error
		active, err = s.reader.SaleActive(groupCtx, sale)
		return err
	})
	if err := group.Wait(); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "sale state unreadable",
				"sale", sale.Short(),
				"error", err,
			)
		}
		snapshot.ReadFailed = true
		return snapshot
	}

	price, ok := new(big.Int).SetString(priceRaw, 10)
	if !ok {
		snapshot.ReadFailed = true
		return snapshot
	}
	snapshot.PriceUnitsPerToken = price
	snapshot.SaleActive = active
	return snapshot
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
