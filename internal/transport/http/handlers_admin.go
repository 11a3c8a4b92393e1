package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brickgate/internal/admin"
	"brickgate/internal/platform/middleware"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
	"brickgate/pkg/platform/httputil"
)

// AdminService is the slice of the admin service the review endpoints need.
type AdminService interface {
	RequireAdmin(ctx context.Context, caller id.Address) error
	ReviewQueue(ctx context.Context) (admin.Queue, error)
	ApproveAndWhitelist(ctx context.Context, actor, wallet id.Address) (admin.ApplyReport, error)
	RejectAndRevoke(ctx context.Context, actor, wallet id.Address) (admin.ApplyReport, error)
	Freeze(ctx context.Context, actor, wallet id.Address) (admin.ApplyReport, error)
	ReWhitelist(ctx context.Context, actor, wallet id.Address) (admin.ApplyReport, error)
}

type AdminHandler struct {
	service AdminService
	logger  *slog.Logger
}

func NewAdminHandler(service AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

func (h *AdminHandler) Register(r chi.Router) {
	r.Get("/admin/kyc/queue", h.HandleQueue)
	r.Post("/admin/kyc/{wallet}/approve", h.action(admin.ActionApproveAndWhitelist))
	r.Post("/admin/kyc/{wallet}/reject", h.action(admin.ActionRejectAndRevoke))
	r.Post("/admin/kyc/{wallet}/freeze", h.action(admin.ActionFreeze))
	r.Post("/admin/kyc/{wallet}/rewhitelist", h.action(admin.ActionReWhitelist))
}

// HandleQueue returns pending, approved and rejected submissions joined with
// live registry state.
func (h *AdminHandler) HandleQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	queue, err := h.service.ReviewQueue(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "review queue failed",
			"error", err,
			"actor", actor.Short(),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toQueueResponse(queue))
}

// action builds the handler for one composite registry action. The report is
// returned on success and on partial application; a partial apply is still an
// error status so clients retry or escalate.
func (h *AdminHandler) action(name admin.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		actor, ok := h.requireAdmin(w, r)
		if !ok {
			return
		}

		wallet, err := id.ParseAddress(chi.URLParam(r, "wallet"))
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid wallet address"))
			return
		}

		report, err := h.dispatch(ctx, name, actor, wallet)
		if err != nil {
			h.logger.ErrorContext(ctx, "admin action failed",
				"error", err,
				"action", string(name),
				"actor", actor.Short(),
				"wallet", wallet.Short(),
				"request_id", middleware.GetRequestID(ctx),
			)
			// Partial application carries the report so the operator sees
			// which step failed and which receipts landed.
			if dErrors.HasCode(err, dErrors.CodePartiallyApplied) {
				httputil.WriteJSON(w, http.StatusBadGateway, toReportResponse(report))
				return
			}
			httputil.WriteError(w, err)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, toReportResponse(report))
	}
}

func (h *AdminHandler) dispatch(ctx context.Context, name admin.Action, actor, wallet id.Address) (admin.ApplyReport, error) {
	switch name {
	case admin.ActionApproveAndWhitelist:
		return h.service.ApproveAndWhitelist(ctx, actor, wallet)
	case admin.ActionRejectAndRevoke:
		return h.service.RejectAndRevoke(ctx, actor, wallet)
	case admin.ActionFreeze:
		return h.service.Freeze(ctx, actor, wallet)
	case admin.ActionReWhitelist:
		return h.service.ReWhitelist(ctx, actor, wallet)
	default:
		return admin.ApplyReport{}, dErrors.New(dErrors.CodeInternal, "unknown admin action")
	}
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (id.Address, bool) {
	ctx := r.Context()
	actor := middleware.GetWallet(ctx)
	if err := h.service.RequireAdmin(ctx, actor); err != nil {
		httputil.WriteError(w, err)
		return id.ZeroAddress, false
	}
	return actor, true
}
