package api

import (
	_ "embed"
	"net/http"
	"sync"

	"sigs.k8s.io/yaml"

	"github.com/Togather-Foundation/topicdir/internal/api/problem"
)

//go:embed openapi.yaml
var openAPIYAML []byte

var (
	openAPIJSON    []byte
	openAPIJSONErr error
	openAPIOnce    sync.Once
)

// OpenAPIDocument returns the embedded OpenAPI document as JSON.
func OpenAPIDocument() ([]byte, error) {
	openAPIOnce.Do(func() {
		openAPIJSON, openAPIJSONErr = yaml.YAMLToJSON(openAPIYAML)
	})
	return openAPIJSON, openAPIJSONErr
}

func OpenAPIHandler(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := OpenAPIDocument()
		if err != nil {
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "OpenAPI document unavailable", err, env)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
	}
}
