package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "brickgate/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "bad_request" {
			t.Fatalf("expected error code bad_request, got %q", body["error"])
		}
		if body["error_description"] != "invalid input" {
			t.Fatalf("expected error_description to be returned for bad request")
		}
	})

	t.Run("remote call surfaces the node reason", func(t *testing.T) {
		w := httptest.NewRecorder()
		cause := dErrors.New(dErrors.CodeRemoteCall, "execution reverted: sold out")
		WriteError(w, dErrors.Wrap(cause, dErrors.CodeRemoteCall, "buy transaction failed"))

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected status %d, got %d", http.StatusBadGateway, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		want := "buy transaction failed: execution reverted: sold out"
		if body["error_description"] != want {
			t.Fatalf("expected error_description %q, got %q", want, body["error_description"])
		}
	})

	t.Run("gating codes map to their statuses", func(t *testing.T) {
		cases := map[dErrors.Code]int{
			dErrors.CodeIllegalTransition:    http.StatusConflict,
			dErrors.CodeListingLocked:        http.StatusConflict,
			dErrors.CodeMissingDocuments:     http.StatusUnprocessableEntity,
			dErrors.CodePurchasePrecondition: http.StatusPreconditionFailed,
			dErrors.CodeRemoteCall:           http.StatusBadGateway,
			dErrors.CodePartiallyApplied:     http.StatusBadGateway,
		}
		for code, want := range cases {
			w := httptest.NewRecorder()
			WriteError(w, dErrors.New(code, "boom"))
			if w.Code != want {
				t.Fatalf("code %s: expected status %d, got %d", code, want, w.Code)
			}
		}
	})

	t.Run("non-domain error falls back to 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, http.ErrServerClosed)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})
}
