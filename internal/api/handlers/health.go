package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Togather-Foundation/topicdir/internal/domain/topics"
)

// HealthCheck is the readiness report.
type HealthCheck struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	GitCommit string                 `json:"git_commit"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp string                 `json:"timestamp"`
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type HealthChecker struct {
	dir       *topics.Directory
	version   string
	gitCommit string
}

func NewHealthChecker(dir *topics.Directory, version, gitCommit string) *HealthChecker {
	return &HealthChecker{dir: dir, version: version, gitCommit: gitCommit}
}

// Healthz is the liveness probe. It reports ok while the process can serve
// HTTP, and 503 once shutdown has cancelled the request context.
func (h *HealthChecker) Healthz(w http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
		return
	default:
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports whether the topic directory is loaded.
func (h *HealthChecker) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckResult{
		"topics": h.checkTopics(),
	}

	status := "healthy"
	code := http.StatusOK
	for _, check := range checks {
		if check.Status == "fail" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, HealthCheck{
		Status:    status,
		Version:   h.version,
		GitCommit: h.gitCommit,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthChecker) checkTopics() CheckResult {
	if h.dir == nil || h.dir.Len() == 0 {
		return CheckResult{
			Status:  "fail",
			Message: "Topic directory is empty",
		}
	}
	return CheckResult{
		Status:  "pass",
		Message: fmt.Sprintf("%d topics loaded", h.dir.Len()),
		Details: map[string]any{"count": h.dir.Len()},
	}
}
