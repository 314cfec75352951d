package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

const RequestIDKey contextKey = "request_id"

// RequestID tags every request with an identifier. An inbound
// X-Request-ID header is honored so callers can correlate across hops;
// otherwise a fresh uuid is minted. The id is echoed on the response
// and stored in the request context for the access log and Sentry.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		r = r.WithContext(context.WithValue(r.Context(), RequestIDKey, id))
		next.ServeHTTP(w, r)
	})
}

// GetRequestID returns the request id stored by RequestID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
