package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brickgate/internal/compliance"
	"brickgate/internal/domain"
	"brickgate/internal/platform/middleware"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
	"brickgate/pkg/platform/httputil"
)

// ComplianceService is the slice of the compliance service the KYC endpoints
// need.
type ComplianceService interface {
	Submit(ctx context.Context, wallet id.Address, profile domain.ComplianceProfile, documents map[domain.DocumentSlot]domain.Document) (domain.Submission, error)
	Status(ctx context.Context, wallet id.Address) (compliance.Status, error)
}

type KYCHandler struct {
	service ComplianceService
	logger  *slog.Logger
}

func NewKYCHandler(service ComplianceService, logger *slog.Logger) *KYCHandler {
	return &KYCHandler{service: service, logger: logger}
}

func (h *KYCHandler) Register(r chi.Router) {
	r.Post("/kyc/submit", h.HandleSubmit)
	r.Get("/kyc/status", h.HandleStatus)
}

// HandleSubmit creates or replaces the caller's compliance submission and
// writes the commitment to the request registry.
func (h *KYCHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	wallet := middleware.GetWallet(ctx)
	if wallet.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "connect a wallet to submit"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[SubmitKYCRequest](w, r, h.logger)
	if !ok {
		return
	}

	submission, err := h.service.Submit(ctx, wallet, req.profile(), req.documents())
	if err != nil {
		h.logger.ErrorContext(ctx, "kyc submit failed",
			"error", err,
			"wallet", wallet.Short(),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toSubmissionResponse(submission))
}

// HandleStatus returns the caller's verification state joined with the local
// commitment integrity check.
func (h *KYCHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	wallet := middleware.GetWallet(ctx)
	if wallet.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "connect a wallet to check status"))
		return
	}

	status, err := h.service.Status(ctx, wallet)
	if err != nil {
		h.logger.ErrorContext(ctx, "kyc status failed",
			"error", err,
			"wallet", wallet.Short(),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toStatusResponse(status))
}
