package middleware

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// RequestIDHeader is the header carrying the request id.
	RequestIDHeader = "X-Request-Id"
	// RequestIDContextKey is the context key for the request id
	RequestIDContextKey ContextKey = "request_id"
)

var ulidEntropy = struct {
	sync.Mutex
	*rand.Rand
}{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}

func newRequestID() string {
	ulidEntropy.Lock()
	defer ulidEntropy.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy.Rand).String()
}

// RequestID assigns a ULID to every request that does not already carry one
// and echoes it back in the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = newRequestID()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext extracts the request id from context
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDContextKey).(string)
	return id, ok
}
