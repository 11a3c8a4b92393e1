package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

// WalletHeader carries the caller's connected wallet. An absent header means
// no wallet is connected; flows that require one reject the zero address.
const WalletHeader = "X-Wallet-Address"

var walletKey = contextKey{"wallet"}

// Wallet extracts the caller's wallet address from the request header into
// the context. A present-but-malformed header is a 400; absence is allowed
// and yields the zero address downstream.
func Wallet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(WalletHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		wallet, err := id.ParseAddress(raw)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    string(dErrors.CodeBadRequest),
				"message": "invalid " + WalletHeader + " header",
			})
			return
		}
		ctx := context.WithValue(r.Context(), walletKey, wallet)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetWallet returns the caller's wallet, or the zero address when no header
// was sent.
func GetWallet(ctx context.Context) id.Address {
	wallet, ok := ctx.Value(walletKey).(id.Address)
	if !ok {
		return id.ZeroAddress
	}
	return wallet
}
