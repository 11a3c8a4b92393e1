// Package httptransport is the thin HTTP layer. Handlers decode and validate
// requests, delegate to domain services, and translate domain errors; no
// business logic lives here.
package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brickgate/internal/platform/middleware"
)

// Deps carries the wired feature handlers for the router.
type Deps struct {
	KYC     *KYCHandler
	Admin   *AdminHandler
	Market  *MarketHandler
	Listing *ListingHandler

	RequestTimeout time.Duration
}

// NewRouter wires all endpoints behind the shared middleware chain. The
// wallet middleware runs on every route so handlers read the caller's
// address from context only; cross-cutting middleware (request ID, logging,
// recovery, metrics) is supplied by the caller in chain order.
func NewRouter(deps Deps, chain ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	for _, mw := range chain {
		r.Use(mw)
	}
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}
	r.Use(middleware.Wallet)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if deps.KYC != nil {
		deps.KYC.Register(r)
	}
	if deps.Admin != nil {
		deps.Admin.Register(r)
	}
	if deps.Market != nil {
		deps.Market.Register(r)
	}
	if deps.Listing != nil {
		deps.Listing.Register(r)
	}

	return r
}
