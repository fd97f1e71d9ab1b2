package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"
)

const (
	DefaultIdempotencyHeader = "Idempotency-Key"
	ReplayedHeader           = "Idempotent-Replayed"

	minSweepInterval = time.Minute
)

// replay is a finished 2xx response kept for the lifetime of its key.
type replay struct {
	status    int
	header    http.Header
	body      []byte
	expiresAt time.Time
}

// InMemoryIdempotencyStore holds replays per scoped key until they expire.
// Entries are dropped lazily on lookup and by a background sweep.
type InMemoryIdempotencyStore struct {
	mu      sync.Mutex
	replays map[string]replay
	ttl     time.Duration
	now     func() time.Time
	done    chan struct{}
	stop    sync.Once
}

func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		replays: make(map[string]replay),
		ttl:     ttl,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.sweepEvery(max(ttl, minSweepInterval))
	return s
}

func (s *InMemoryIdempotencyStore) lookup(key string) (replay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rp, ok := s.replays[key]
	if !ok {
		return replay{}, false
	}
	if !s.now().Before(rp.expiresAt) {
		delete(s.replays, key)
		return replay{}, false
	}
	return rp, true
}

func (s *InMemoryIdempotencyStore) remember(key string, rp replay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rp.expiresAt = s.now().Add(s.ttl)
	s.replays[key] = rp
}

func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, rp := range s.replays {
		if !now.Before(rp.expiresAt) {
			delete(s.replays, key)
		}
	}
}

func (s *InMemoryIdempotencyStore) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

// Stop ends the background sweep. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Stop() {
	s.stop.Do(func() { close(s.done) })
}

type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response for a repeated key on
// mutating requests. Keys are scoped per tenant and path, so a retried price
// apply never writes twice.
func Idempotency(store *InMemoryIdempotencyStore, headerName string) func(http.Handler) http.Handler {
	if headerName == "" {
		headerName = DefaultIdempotencyHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := replayKey(r, headerName)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if rp, ok := store.lookup(key); ok {
				writeReplay(w, rp)
				return
			}

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= 200 && rec.status < 300 {
				store.remember(key, replay{
					status: rec.status,
					header: w.Header().Clone(),
					body:   rec.body.Bytes(),
				})
			}
		})
	}
}

// replayKey is empty for reads and for requests without a key.
func replayKey(r *http.Request, headerName string) string {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		return ""
	}
	key := r.Header.Get(headerName)
	if key == "" {
		return ""
	}
	return TenantFromContext(r.Context()) + "|" + r.Method + "|" + r.URL.Path + "|" + key
}

func writeReplay(w http.ResponseWriter, rp replay) {
	for name, values := range rp.header {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.Header().Set(ReplayedHeader, "true")
	w.WriteHeader(rp.status)
	_, _ = w.Write(rp.body)
}
