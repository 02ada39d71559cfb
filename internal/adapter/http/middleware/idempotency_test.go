package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Sharans23/LenDenClub/internal/usecase/mocks"
)

const testIdempotencyTTL = 24 * time.Hour

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)

	cached := []byte(`{"message":"Transfer successful"}`)
	store.EXPECT().
		CheckAndSet(gomock.Any(), "key-1", gomock.Nil(), testIdempotencyTTL).
		Return(true, cached, nil)

	mw := NewIdempotencyMiddleware(store, testIdempotencyTTL)

	var called bool
	req := httptest.NewRequest(http.MethodPost, "/api/transactions/transfer", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if called {
		t.Fatal("handler should not be called for a cached key")
	}
	if rr.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header on cached response")
	}
	if !bytes.Equal(rr.Body.Bytes(), cached) {
		t.Fatalf("expected cached body, got %s", rr.Body.String())
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)

	store.EXPECT().
		CheckAndSet(gomock.Any(), "key-2", gomock.Nil(), testIdempotencyTTL).
		Return(false, nil, nil)
	store.EXPECT().
		Update(gomock.Any(), "key-2", []byte(`{"ok":true}`), testIdempotencyTTL).
		Return(nil)

	mw := NewIdempotencyMiddleware(store, testIdempotencyTTL)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/transfer", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-2")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_DoesNotCacheFailedResponses(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)

	store.EXPECT().
		CheckAndSet(gomock.Any(), "key-3", gomock.Nil(), testIdempotencyTTL).
		Return(false, nil, nil)
	// No Update expectation: a 400 must not be cached.

	mw := NewIdempotencyMiddleware(store, testIdempotencyTTL)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions/transfer", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-3")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_StoreErrorFailsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)

	store.EXPECT().
		CheckAndSet(gomock.Any(), "key-err", gomock.Nil(), testIdempotencyTTL).
		Return(false, nil, context.DeadlineExceeded)

	mw := NewIdempotencyMiddleware(store, testIdempotencyTTL)

	var called bool
	req := httptest.NewRequest(http.MethodPost, "/api/transactions/transfer", bytes.NewBufferString(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-err")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if called {
		t.Fatal("handler should not be called when store errors")
	}
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_SkipsGetRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)
	// No expectations: GETs never consult the store.

	mw := NewIdempotencyMiddleware(store, testIdempotencyTTL)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-get")
	rr := httptest.NewRecorder()

	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if !called {
		t.Fatal("handler should be called for GET requests")
	}
}
