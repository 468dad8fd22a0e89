package middleware

import (
	"fmt"
	"net/http"

	"github.com/Togather-Foundation/topicdir/internal/api/problem"
)

// DefaultMaxBodySize bounds request bodies. Every route is a GET, so anything
// beyond a few KB is a misbehaving client.
const DefaultMaxBodySize int64 = 16 << 10 // 16KB

// RequestSize limits the size of incoming request bodies.
//
// Requests announcing a Content-Length above maxBytes are rejected with a
// 413 problem response before reaching next. Other bodies are wrapped with
// http.MaxBytesReader so reads past the limit fail.
func RequestSize(maxBytes int64, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				problem.Write(w, r, http.StatusRequestEntityTooLarge, problem.TypePayloadTooLarge, "Payload too large",
					nil, env, problem.WithDetail(fmt.Sprintf("request body exceeds %d bytes", maxBytes)))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
