package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmynk/kaskos/internal/storage"
)

type pingStore struct {
	storage.Store
	err error
}

func (s *pingStore) Ping(ctx context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "store up", status: http.StatusOK},
		{name: "store down", err: storage.ErrUnavailable, status: http.StatusServiceUnavailable},
		{name: "other failure", err: errors.New("boom"), status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := healthHandler(&pingStore{err: tt.err}, time.Second)
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestCorsMiddleware(t *testing.T) {
	var reached bool
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/kaskos.v1.LedgerService/GetReport", nil))
	if reached {
		t.Error("preflight reached the handler")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/kaskos.v1.LedgerService/GetReport", nil))
	if !reached {
		t.Error("POST did not reach the handler")
	}
}
