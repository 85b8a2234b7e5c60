package botcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheck_Disabled(t *testing.T) {
	v := New(false, "", "http://unused", time.Second)

	// Disabled verification accepts anything, token or not.
	if err := v.Check(context.Background(), "", ""); err != nil {
		t.Errorf("Check with verification disabled failed: %v", err)
	}
	if v.Enabled() {
		t.Error("Enabled() = true, want false")
	}
}

func TestCheck_Success(t *testing.T) {
	var gotSecret, gotToken, gotIP string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotSecret = r.PostFormValue("secret")
		gotToken = r.PostFormValue("response")
		gotIP = r.PostFormValue("remoteip")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	v := New(true, "the-secret", srv.URL, time.Second)
	if err := v.Check(context.Background(), "the-token", "203.0.113.9"); err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if gotSecret != "the-secret" || gotToken != "the-token" || gotIP != "203.0.113.9" {
		t.Errorf("verify form = (%q, %q, %q)", gotSecret, gotToken, gotIP)
	}
}

func TestCheck_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	v := New(true, "secret", srv.URL, time.Second)
	err := v.Check(context.Background(), "bad-token", "")
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
}

func TestCheck_MissingToken(t *testing.T) {
	v := New(true, "secret", "http://unused", time.Second)

	// An empty token never reaches the provider.
	err := v.Check(context.Background(), "", "")
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
}

func TestCheck_EndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	v := New(true, "secret", srv.URL, time.Second)
	if err := v.Check(context.Background(), "token", ""); err == nil {
		t.Fatal("expected error for non-200 verify endpoint")
	}
}
