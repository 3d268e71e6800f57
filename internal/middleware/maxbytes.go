package middleware

import "net/http"

// defaultMaxBodyBytes caps request bodies at 1 MiB.
const defaultMaxBodyBytes = 1 << 20

// MaxBytes limits the request body size. Bodies over maxBytes make reads fail,
// which surfaces as a 400/413 to the client. Apply to routes that accept a body.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
