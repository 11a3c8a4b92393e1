package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brickgate/internal/listing"
	"brickgate/internal/platform/middleware"
	"brickgate/internal/purchase"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
	"brickgate/pkg/platform/httputil"
)

// MarketListings is the slice of the listing service the public market needs.
type MarketListings interface {
	Catalog(ctx context.Context) ([]listing.PropertyView, error)
	Property(ctx context.Context, token id.Address) (listing.PropertyView, error)
}

// PurchaseService runs the precondition chain and the buy transaction.
type PurchaseService interface {
	Purchase(ctx context.Context, wallet, token id.Address, partsRequested uint64) (purchase.Confirmation, error)
}

type MarketHandler struct {
	listings  MarketListings
	purchases PurchaseService
	logger    *slog.Logger
}

func NewMarketHandler(listings MarketListings, purchases PurchaseService, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{listings: listings, purchases: purchases, logger: logger}
}

func (h *MarketHandler) Register(r chi.Router) {
	r.Get("/market", h.HandleCatalog)
	r.Get("/market/{token}", h.HandleProperty)
	r.Post("/market/{token}/purchase", h.HandlePurchase)
}

// HandleCatalog lists published properties joined with live token and sale
// state. Sale read failures degrade per property instead of failing the page.
func (h *MarketHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := h.listings.Catalog(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "market catalog failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCatalogResponse(views))
}

// HandleProperty returns one published property. Hidden and unknown tokens
// are indistinguishable to the public surface.
func (h *MarketHandler) HandleProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := id.ParseAddress(chi.URLParam(r, "token"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid token address"))
		return
	}

	view, err := h.listings.Property(ctx, token)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "market property failed",
				"error", err,
				"token", token.Short(),
				"request_id", middleware.GetRequestID(ctx),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toPropertyResponse(view))
}

// HandlePurchase runs the full precondition chain and, when every gate
// passes, submits the buy transaction. A failed precondition returns 412
// with the machine-readable failure code for the frontend banner.
func (h *MarketHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := id.ParseAddress(chi.URLParam(r, "token"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid token address"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[PurchaseRequest](w, r, h.logger)
	if !ok {
		return
	}

	wallet := middleware.GetWallet(ctx)
	confirmation, err := h.purchases.Purchase(ctx, wallet, token, req.Parts)
	if err != nil {
		var precondition *purchase.Error
		if errors.As(err, &precondition) {
			httputil.WriteJSON(w, http.StatusPreconditionFailed, PurchaseFailureResponse{
				Error:   string(dErrors.CodePurchasePrecondition),
				Failure: string(precondition.Code),
				Message: precondition.Error(),
			})
			return
		}
		h.logger.ErrorContext(ctx, "purchase failed",
			"error", err,
			"wallet", wallet.Short(),
			"token", token.Short(),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toPurchaseResponse(confirmation))
}
