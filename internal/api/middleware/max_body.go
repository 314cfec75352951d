package middleware

import (
	"net/http"

	"github.com/umoyo-health/umoyoai/internal/api"
)

// MaxBodyBytes caps request bodies at limit bytes. Requests that declare
// a larger Content-Length are rejected with 413 up front; everything
// else is wrapped in a MaxBytesReader so chunked or lying clients get
// cut off at the same limit. A non-positive limit disables the cap.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Body == nil:
			case r.ContentLength > limit:
				api.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			default:
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			next.ServeHTTP(w, r)
		})
	}
}
