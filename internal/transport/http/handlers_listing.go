package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brickgate/internal/domain"
	"brickgate/internal/platform/middleware"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
	"brickgate/pkg/platform/httputil"
)

// ListingService is the slice of the listing service the admin endpoints
// need.
type ListingService interface {
	Upsert(ctx context.Context, actor id.Address, record domain.Listing) (domain.Listing, error)
	Publish(ctx context.Context, actor, token id.Address) error
	Unpublish(ctx context.Context, actor, token id.Address) error
	Find(ctx context.Context, token id.Address) (domain.Listing, error)
}

// Authorizer gates the listing admin surface on the contract owner check.
type Authorizer interface {
	RequireAdmin(ctx context.Context, caller id.Address) error
}

type ListingHandler struct {
	service    ListingService
	authorizer Authorizer
	logger     *slog.Logger
}

func NewListingHandler(service ListingService, authorizer Authorizer, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{service: service, authorizer: authorizer, logger: logger}
}

func (h *ListingHandler) Register(r chi.Router) {
	r.Put("/admin/listings/{token}", h.HandleUpsert)
	r.Get("/admin/listings/{token}", h.HandleGet)
	r.Post("/admin/listings/{token}/publish", h.HandlePublish)
	r.Post("/admin/listings/{token}/unpublish", h.HandleUnpublish)
}

// HandleUpsert creates or edits the listing. Published listings are locked
// and must be unpublished before editing.
func (h *ListingHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, token, ok := h.authorize(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpsertListingRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.service.Upsert(ctx, actor, req.listing(token))
	if err != nil {
		h.logger.ErrorContext(ctx, "listing upsert failed",
			"error", err,
			"token", token.Short(),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleGet returns the listing regardless of publication state.
func (h *ListingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, token, ok := h.authorize(w, r)
	if !ok {
		return
	}

	record, err := h.service.Find(ctx, token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *ListingHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

func (h *ListingHandler) HandleUnpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *ListingHandler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	ctx := r.Context()

	actor, token, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var err error
	if published {
		err = h.service.Publish(ctx, actor, token)
	} else {
		err = h.service.Unpublish(ctx, actor, token)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "listing publish toggle failed",
			"error", err,
			"token", token.Short(),
			"published", published,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Find(ctx, token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *ListingHandler) authorize(w http.ResponseWriter, r *http.Request) (actor, token id.Address, ok bool) {
	ctx := r.Context()

	actor = middleware.GetWallet(ctx)
	if err := h.authorizer.RequireAdmin(ctx, actor); err != nil {
		httputil.WriteError(w, err)
		return id.ZeroAddress, id.ZeroAddress, false
	}

	token, err := id.ParseAddress(chi.URLParam(r, "token"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid token address"))
		return id.ZeroAddress, id.ZeroAddress, false
	}

	return actor, token, true
}
