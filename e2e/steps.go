package e2e

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// RegisterSteps wires the step definitions for the KYC and purchase flows.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		return c, tc.Reset()
	})

	ctx.Step(`^a fresh investor wallet$`, tc.aFreshInvestorWallet)
	ctx.Step(`^the investor submits a compliant profile$`, tc.investorSubmitsCompliantProfile)
	ctx.Step(`^the KYC status is "([^"]*)"$`, tc.kycStatusIs)
	ctx.Step(`^the admin approves the investor$`, tc.adminAction("approve"))
	ctx.Step(`^the admin rejects the investor$`, tc.adminAction("reject"))
	ctx.Step(`^the admin freezes the investor$`, tc.adminAction("freeze"))
	ctx.Step(`^the admin rewhitelists the investor$`, tc.adminAction("rewhitelist"))
	ctx.Step(`^the investor buys (\d+) parts? of the demo property$`, tc.investorBuysParts)
	ctx.Step(`^the purchase is blocked with failure "([^"]*)"$`, tc.purchaseBlockedWith)
	ctx.Step(`^the purchase succeeds with a transaction hash$`, tc.purchaseSucceeds)
}

func (tc *TestContext) aFreshInvestorWallet() error {
	if tc.Wallet == "" {
		return fmt.Errorf("no wallet generated for scenario")
	}
	return nil
}

func (tc *TestContext) investorSubmitsCompliantProfile() error {
	payload := map[string]any{
		"profile": map[string]string{
			"firstName":    "Ada",
			"lastName":     "Lovelace",
			"birthDate":    "1990-06-15",
			"nationality":  "FR",
			"taxResidency": "FR",
			"street":       "12 rue des Lilas",
			"city":         "Paris",
			"country":      "FR",
		},
		"documents": map[string]any{
			"identity":       map[string]string{"name": "passport.pdf", "mimeType": "application/pdf", "content": "cGFzc3BvcnQ="},
			"proofOfAddress": map[string]string{"name": "bill.pdf", "mimeType": "application/pdf", "content": "YmlsbA=="},
		},
	}
	if err := tc.Do(http.MethodPost, "/kyc/submit", tc.Wallet, payload); err != nil {
		return err
	}
	if tc.LastStatus != http.StatusCreated {
		return fmt.Errorf("expected 201 submitting KYC, got %d (%v)", tc.LastStatus, tc.LastBody)
	}
	return nil
}

func (tc *TestContext) kycStatusIs(expected string) error {
	if err := tc.Do(http.MethodGet, "/kyc/status", tc.Wallet, nil); err != nil {
		return err
	}
	if tc.LastStatus != http.StatusOK {
		return fmt.Errorf("expected 200 fetching status, got %d", tc.LastStatus)
	}
	state, _ := tc.LastBody["state"].(string)
	if state != expected {
		return fmt.Errorf("expected state %q, got %q", expected, state)
	}
	return nil
}

func (tc *TestContext) adminAction(action string) func() error {
	return func() error {
		path := "/admin/kyc/" + tc.Wallet + "/" + action
		if err := tc.Do(http.MethodPost, path, tc.Admin, nil); err != nil {
			return err
		}
		if tc.LastStatus != http.StatusOK {
			return fmt.Errorf("expected 200 for admin %s, got %d (%v)", action, tc.LastStatus, tc.LastBody)
		}
		outcome, _ := tc.LastBody["outcome"].(string)
		if outcome != "fully_applied" {
			return fmt.Errorf("expected fully applied %s, got %q", action, outcome)
		}
		return nil
	}
}

func (tc *TestContext) investorBuysParts(parts int) error {
	path := "/market/" + tc.DemoToken + "/purchase"
	return tc.Do(http.MethodPost, path, tc.Wallet, map[string]int{"parts": parts})
}

func (tc *TestContext) purchaseBlockedWith(failure string) error {
	if tc.LastStatus != http.StatusPreconditionFailed {
		return fmt.Errorf("expected 412, got %d (%v)", tc.LastStatus, tc.LastBody)
	}
	got, _ := tc.LastBody["failure"].(string)
	if got != failure {
		return fmt.Errorf("expected failure %q, got %q", failure, got)
	}
	return nil
}

func (tc *TestContext) purchaseSucceeds() error {
	if tc.LastStatus != http.StatusOK {
		return fmt.Errorf("expected 200 purchasing, got %d (%v)", tc.LastStatus, tc.LastBody)
	}
	txHash, _ := tc.LastBody["txHash"].(string)
	if txHash == "" {
		return fmt.Errorf("expected a transaction hash, got %v", tc.LastBody)
	}
	return nil
}
