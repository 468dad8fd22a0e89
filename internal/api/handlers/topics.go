package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Togather-Foundation/topicdir/internal/domain/topics"
)

// TopicsHandler serves the read-only topic endpoints. Required parameters and
// the API key are enforced by middleware before these handlers run.
type TopicsHandler struct {
	Service *topics.Service
}

func NewTopicsHandler(svc *topics.Service) *TopicsHandler {
	return &TopicsHandler{Service: svc}
}

type rootResponse struct {
	Message string `json:"message"`
}

type searchResponse struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

type summaryResponse struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
}

// notFoundResponse is returned with status 200 on a miss. Suggestions is
// always a JSON array, never null.
type notFoundResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions"`
}

type listResponse struct {
	Topics []string `json:"topics"`
}

// Root handles GET /
func (h *TopicsHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Message: fmt.Sprintf("Backend is live and serving %d research topics!", h.Service.Directory().Len()),
	})
}

// Search handles GET /search?q=
func (h *TopicsHandler) Search(w http.ResponseWriter, r *http.Request) {
	res := h.Service.Search(r.Context(), r.URL.Query().Get("q"))
	if !res.Found {
		writeNotFound(w, res, topics.OpSearch)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Topic: res.Entry.Name, Description: res.Entry.Description})
}

// Summarize handles GET /summarize?topic=
func (h *TopicsHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	res := h.Service.Summarize(r.Context(), r.URL.Query().Get("topic"))
	if !res.Found {
		writeNotFound(w, res, topics.OpSummarize)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Topic: res.Entry.Name, Summary: res.Entry.Description})
}

// All handles GET /all
func (h *TopicsHandler) All(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{Topics: h.Service.ListAll(r.Context())})
}

func writeNotFound(w http.ResponseWriter, res topics.Result, op string) {
	suggestions := res.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, notFoundResponse{
		Error:       res.NotFoundMessage(op),
		Suggestions: suggestions,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
