package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"rentpilot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(calls *int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"tenant":"` + TenantFromContext(r.Context()) + `"}`))
	})
}

func TestTenant_FromHeader(t *testing.T) {
	var calls int32
	h := Tenant("X-Tenant-ID", "", logger.Discard())(okHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/suggestions", nil)
	req.Header.Set("X-Tenant-ID", " acme ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tenant":"acme"}`, rec.Body.String())
}

func TestTenant_Missing(t *testing.T) {
	var calls int32
	h := Tenant("X-Tenant-ID", "", logger.Discard())(okHandler(&calls))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/kpis", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "MISSING_TENANT", body["code"])
}

func TestTenant_DefaultTenant(t *testing.T) {
	var calls int32
	h := Tenant("X-Tenant-ID", "single", logger.Discard())(okHandler(&calls))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tenant":"single"}`, rec.Body.String())
}

func TestTenantRateLimiter_PerTenantWindow(t *testing.T) {
	rl := NewTenantRateLimiter(2, time.Minute, nil, logger.Discard())
	defer rl.Stop()

	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "third request inside the window must be rejected")
	assert.True(t, rl.Allow("b"), "other tenants keep their own budget")
	assert.True(t, rl.Allow(""), "requests without a key are not limited")

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"), "budget resets once the window has passed")
}

func TestTenantRateLimit_Rejects(t *testing.T) {
	rl := NewTenantRateLimiter(1, time.Minute, nil, logger.Discard())
	defer rl.Stop()

	var calls int32
	h := Tenant("X-Tenant-ID", "", logger.Discard())(TenantRateLimit(rl)(okHandler(&calls)))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant-ID", "acme")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "request %d", i)
	}
	assert.Equal(t, int32(1), calls)
}

func TestIdempotency_ReplaysPerTenant(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	var calls int32
	h := Tenant("X-Tenant-ID", "", logger.Discard())(Idempotency(store, "")(okHandler(&calls)))

	send := func(tenant string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/properties/p1/apply", strings.NewReader(`{"price":120}`))
		req.Header.Set("X-Tenant-ID", tenant)
		req.Header.Set(DefaultIdempotencyHeader, "k-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("acme")
	second := send("acme")
	other := send("globex")

	assert.Equal(t, int32(2), calls)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(ReplayedHeader))
	assert.JSONEq(t, `{"tenant":"globex"}`, other.Body.String())
}

func TestIdempotency_IgnoresReads(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	var calls int32
	h := Idempotency(store, "")(okHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/kpis", nil)
		req.Header.Set(DefaultIdempotencyHeader, "k-1")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, int32(2), calls)
}

func TestIdempotency_KeyExpiresAfterTTL(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()
	clock := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	var calls int32
	h := Idempotency(store, "")(okHandler(&calls))
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/properties/p1/apply", strings.NewReader(`{"price":120}`))
		req.Header.Set(DefaultIdempotencyHeader, "k-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	send()
	clock = clock.Add(59 * time.Minute)
	assert.Equal(t, "true", send().Header().Get(ReplayedHeader))

	clock = clock.Add(time.Minute)
	assert.Empty(t, send().Header().Get(ReplayedHeader))
	assert.Equal(t, int32(2), calls)
}

func TestIdempotency_FailuresAreNotReplayed(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	var calls int32
	h := Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/properties/p1/apply", strings.NewReader(`{"price":120}`))
		req.Header.Set(DefaultIdempotencyHeader, "k-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	}
	assert.Equal(t, int32(2), calls)
}

func TestInMemoryIdempotencyStore_SweepDropsExpired(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()
	clock := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	store.remember("old", replay{status: http.StatusOK})
	clock = clock.Add(30 * time.Second)
	store.remember("fresh", replay{status: http.StatusOK})
	clock = clock.Add(45 * time.Second)

	store.sweep()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotContains(t, store.replays, "old")
	assert.Contains(t, store.replays, "fresh")
}

func TestContentTypeValidation(t *testing.T) {
	var calls int32
	h := ContentTypeValidation(logger.Discard())(okHandler(&calls))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/season-rules", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/season-rules", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestTimeout(t *testing.T) {
	h := RequestTimeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestLogging_PropagatesRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}
