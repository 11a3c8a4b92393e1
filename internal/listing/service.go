package listing

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"brickgate/internal/audit"
	"brickgate/internal/domain"
	"brickgate/internal/listing/store"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

// catalogFetchLimit caps concurrent token reads while building the catalog.
const catalogFetchLimit = 8

// CatalogReader is the slice of the node client used by the market surfaces.
type CatalogReader interface {
	TokenCount(ctx context.Context) (int, error)
	TokenAt(ctx context.Context, index int) (id.Address, error)
	TokenInfo(ctx context.Context, token id.Address) (domain.TokenInfo, error)
	PriceUnitsPerToken(ctx context.Context, sale id.Address) (string, error)
	SaleActive(ctx context.Context, sale id.Address) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service manages listing metadata and serves the market catalog.
type Service struct {
	listings       store.ListingStore
	reader         CatalogReader
	logger         *slog.Logger
	auditPublisher AuditPublisher
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service.
func New(listings store.ListingStore, reader CatalogReader, opts ...Option) *Service {
	s := &Service{
		listings: listings,
		reader:   reader,
		tracer:   otel.Tracer("brickgate/listing"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert creates or edits listing metadata. A published listing is locked:
// the administrator must unpublish before editing. The published flag itself
// only changes through Publish and Unpublish.
func (s *Service) Upsert(ctx context.Context, actor id.Address, record domain.Listing) (domain.Listing, error) {
	existing, err := s.listings.Find(ctx, record.Token)
	switch {
	case err == nil:
		if existing.Published {
			return domain.Listing{}, dErrors.New(dErrors.CodeListingLocked,
				"listing is published; unpublish before editing")
		}
		record.Published = existing.Published
	case errors.Is(err, store.ErrNotFound):
		record.Published = false
	default:
		return domain.Listing{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load listing")
	}

	record.UpdatedAt = s.now()
	if err := s.listings.Upsert(ctx, record); err != nil {
		return domain.Listing{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store listing")
	}
	s.emitAudit(ctx, audit.Event{
		Action: audit.ActionListingUpserted,
		Actor:  actor,
		Token:  record.Token,
	})
	return record, nil
}

// Publish makes the listing visible in the market catalog and locks its
// fields.
func (s *Service) Publish(ctx context.Context, actor, token id.Address) error {
	return s.setPublished(ctx, actor, token, true, audit.ActionListingPublished)
}

// Unpublish hides the listing and unlocks its fields for editing.
func (s *Service) Unpublish(ctx context.Context, actor, token id.Address) error {
	return s.setPublished(ctx, actor, token, false, audit.ActionListingHidden)
}

func (s *Service) setPublished(ctx context.Context, actor, token id.Address, published bool, auditAction audit.Action) error {
	if err := s.listings.SetPublished(ctx, token, published); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "no listing for token")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update listing")
	}
	s.emitAudit(ctx, audit.Event{
		Action: auditAction,
		Actor:  actor,
		Token:  token,
	})
	return nil
}

// Find returns the raw listing record regardless of publication, for admin
// screens.
func (s *Service) Find(ctx context.Context, token id.Address) (domain.Listing, error) {
	record, err := s.listings.Find(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Listing{}, dErrors.New(dErrors.CodeNotFound, "no listing for token")
		}
		return domain.Listing{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load listing")
	}
	return record, nil
}

// Catalog lists every factory token that has a published listing, with live
// token and sale state. Token reads are issued concurrently and joined in
// factory order.
func (s *Service) Catalog(ctx context.Context) ([]PropertyView, error) {
	ctx, span := s.tracer.Start(ctx, "listing.Catalog")
	defer span.End()

	count, err := s.reader.TokenCount(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRemoteCall, "failed to read token count")
	}

	views := make([]*PropertyView, count)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(catalogFetchLimit)
	for i := 0; i < count; i++ {
		group.Go(func() error {
			token, err := s.reader.TokenAt(groupCtx, i)
			if err != nil {
				return err
			}
			record, err := s.listings.Find(groupCtx, token)
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if !record.Published {
				return nil
			}
			view, err := s.propertyView(groupCtx, record)
			if err != nil {
				return err
			}
			views[i] = &view
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRemoteCall, "failed to build catalog")
	}

	out := make([]PropertyView, 0, count)
	for _, view := range views {
		if view != nil {
			out = append(out, *view)
		}
	}
	return out, nil
}

// Property returns one published property with live state.
func (s *Service) Property(ctx context.Context, token id.Address) (PropertyView, error) {
	ctx, span := s.tracer.Start(ctx, "listing.Property",
		trace.WithAttributes(attribute.String("token", token.Short())))
	defer span.End()

	record, err := s.listings.Find(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PropertyView{}, dErrors.New(dErrors.CodeNotFound, "no listing for token")
		}
		return PropertyView{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load listing")
	}
	if !record.Published {
		return PropertyView{}, dErrors.New(dErrors.CodeNotFound, "no listing for token")
	}
	return s.propertyView(ctx, record)
}

func (s *Service) propertyView(ctx context.Context, record domain.Listing) (PropertyView, error) {
	info, err := s.reader.TokenInfo(ctx, record.Token)
	if err != nil {
		return PropertyView{}, dErrors.Wrap(err, dErrors.CodeRemoteCall, "failed to read token")
	}
	return PropertyView{
		Listing:         record,
		Token:           info,
		FundingProgress: info.FundingProgress(),
		Sale:            s.saleSnapshot(ctx, info.SaleContract),
	}, nil
}

// saleSnapshot reads price and activity concurrently. Market surfaces degrade
// on sale read failures instead of failing the page.
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
