package farcaster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_ResolveAddress(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotKey = r.Header.Get("api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"users":[{"fid":214025,"username":"hifi","custody_address":"0x3c162E13c43B60aA0e54e1b19Bedeb5Da1d884E3"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	addr, err := c.ResolveAddress(context.Background(), "214025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != "0x3c162E13c43B60aA0e54e1b19Bedeb5Da1d884E3" {
		t.Errorf("unexpected address: %s", addr)
	}
	if gotPath != "/v2/farcaster/user/bulk?fids=214025" {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api-key header not sent, got %q", gotKey)
	}
}

func TestClient_ResolveAddress_UserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"users":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	_, err := c.ResolveAddress(context.Background(), "999999")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestClient_ResolveAddress_NoAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users":[{"fid":1,"username":"x","custody_address":""}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	_, err := c.ResolveAddress(context.Background(), "1")
	if !errors.Is(err, ErrNoAddress) {
		t.Errorf("expected ErrNoAddress, got %v", err)
	}
}

func TestClient_ResolveAddress_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	if _, err := c.ResolveAddress(context.Background(), "1"); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestClient_ResolveAddress_NotFoundStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	_, err := c.ResolveAddress(context.Background(), "1")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound on 404, got %v", err)
	}
}

func TestClient_ResolveAddress_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := c.ResolveAddress(ctx, "1"); err == nil {
		t.Error("expected error on cancelled context")
	}
}
