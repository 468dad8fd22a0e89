package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Togather-Foundation/topicdir/internal/api/problem"
)

// Request value locations.
const (
	InQuery  = "query"
	InHeader = "header"
)

var errMissingFields = errors.New("missing required fields")

// Field is a request value a route cannot run without.
type Field struct {
	In   string
	Name string
}

func QueryParam(name string) Field {
	return Field{In: InQuery, Name: name}
}

func HeaderParam(name string) Field {
	return Field{In: InHeader, Name: name}
}

// Key is the identifier used in problem "errors", e.g. "query.q" or "header.x-api-key".
func (f Field) Key() string {
	if f.In == InHeader {
		return f.In + "." + strings.ToLower(f.Name)
	}
	return f.In + "." + f.Name
}

func (f Field) present(r *http.Request) bool {
	switch f.In {
	case InHeader:
		return len(r.Header.Values(f.Name)) > 0
	case InQuery:
		_, ok := r.URL.Query()[f.Name]
		return ok
	default:
		return false
	}
}

// RequireFields rejects requests missing any of fields with 422 before next
// runs. Presence is what counts: an empty value satisfies the requirement.
// Every missing field is reported in one response.
func RequireFields(env string, fields ...Field) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			missing := make(map[string]interface{})
			for _, f := range fields {
				if !f.present(r) {
					missing[f.Key()] = problem.FieldRequiredMessage
				}
			}
			if len(missing) > 0 {
				problem.Write(w, r, http.StatusUnprocessableEntity, problem.TypeValidation, "Unprocessable Entity", errMissingFields, env,
					problem.WithDetail(problem.DetailMissingFields),
					problem.WithErrors(missing),
				)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
