// Package botcheck verifies client captcha tokens against the provider's
// server-side verification endpoint. When verification is disabled the
// Verifier accepts every submission.
package botcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrVerificationFailed is returned when the provider rejects the token.
var ErrVerificationFailed = errors.New("captcha verification failed")

// Verifier checks captcha tokens.
type Verifier struct {
	enabled   bool
	secret    string
	verifyURL string
	client    *http.Client
}

// New creates a verifier. When enabled is false, Check always succeeds.
func New(enabled bool, secret, verifyURL string, timeout time.Duration) *Verifier {
	return &Verifier{
		enabled:   enabled,
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether verification is active.
func (v *Verifier) Enabled() bool {
	return v.enabled
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Check verifies token with the provider. A missing token, a transport
// failure or a negative verdict all fail the check.
func (v *Verifier) Check(ctx context.Context, token, remoteIP string) error {
	if !v.enabled {
		return nil
	}
	if token == "" {
		return ErrVerificationFailed
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("captcha verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha verify call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("captcha verify endpoint returned %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("captcha verify response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", ErrVerificationFailed, strings.Join(result.ErrorCodes, ", "))
	}
	return nil
}
