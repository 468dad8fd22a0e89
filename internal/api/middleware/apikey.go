package middleware

import (
	"errors"
	"net/http"

	"github.com/Togather-Foundation/topicdir/internal/api/problem"
	"github.com/Togather-Foundation/topicdir/internal/auth"
	"github.com/Togather-Foundation/topicdir/internal/metrics"
)

// APIKeyAuth admits requests whose credential header equals the shared key.
// A missing header is a 422 validation failure; a wrong key is 401 with the
// fixed detail "Invalid API Key".
func APIKeyAuth(key *auth.StaticKey, env string) func(http.Handler) http.Handler {
	header := HeaderParam(key.Header())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := key.ValidateRequest(r)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, auth.ErrMissingAPIKey):
				metrics.RecordAuthFailure("missing")
				problem.Write(w, r, http.StatusUnprocessableEntity, problem.TypeValidation, "Unprocessable Entity", err, env,
					problem.WithDetail(problem.DetailMissingFields),
					problem.WithErrors(map[string]interface{}{header.Key(): problem.FieldRequiredMessage}),
				)
			default:
				metrics.RecordAuthFailure("invalid")
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env,
					problem.WithDetail(problem.DetailInvalidAPIKey),
				)
			}
		})
	}
}
