// Package e2e drives a running brickgate server over HTTP with godog.
// Configure the target with BRICKGATE_URL, the admin with ADMIN_WALLET, and
// the seeded property with DEMO_TOKEN.
package e2e

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultAdmin     = "0x00000000000000000000000000000000000000ad"
	defaultDemoToken = "0x0000000000000000000000000000000000000101"
)

// TestContext carries per-scenario state: the investor wallet under test and
// the last HTTP exchange.
type TestContext struct {
	BaseURL   string
	Admin     string
	DemoToken string

	client *http.Client

	Wallet     string
	LastStatus int
	LastBody   map[string]any
}

func NewTestContext() *TestContext {
	return &TestContext{
		BaseURL:   getEnv("BRICKGATE_URL", defaultBaseURL),
		Admin:     getEnv("ADMIN_WALLET", defaultAdmin),
		DemoToken: getEnv("DEMO_TOKEN", defaultDemoToken),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Reset gives each scenario its own wallet so state never leaks between
// scenarios sharing one server.
func (tc *TestContext) Reset() error {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generate wallet: %w", err)
	}
	tc.Wallet = "0x" + hex.EncodeToString(raw)
	tc.LastStatus = 0
	tc.LastBody = nil
	return nil
}

// Do issues one request with the given wallet header and captures the
// response for assertions.
func (tc *TestContext) Do(method, path, wallet string, payload any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, tc.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if wallet != "" {
		req.Header.Set("X-Wallet-Address", wallet)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.LastStatus = resp.StatusCode
	tc.LastBody = nil
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(raw) > 0 {
		// Non-JSON bodies (healthz) are fine to skip.
		_ = json.Unmarshal(raw, &tc.LastBody)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
