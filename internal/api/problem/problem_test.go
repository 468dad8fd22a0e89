package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestWrite_DevIncludesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/search?q=x", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, TypeValidation, "bad request", errors.New("boom"), "development")

	if got := res.Result().Header.Get("Content-Type"); got != "application/problem+json" {
		t.Fatalf("expected content type problem+json, got %s", got)
	}

	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != "boom" {
		t.Fatalf("expected detail boom, got %s", body.Detail)
	}
	if body.Instance != "/search" {
		t.Fatalf("expected instance /search, got %s", body.Instance)
	}
}

func TestWrite_ProdSanitizesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/search", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, TypeValidation, "bad request", errors.New("boom"), "production")

	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != http.StatusText(http.StatusBadRequest) {
		t.Fatalf("expected sanitized detail, got %s", body.Detail)
	}
}

func TestWrite_ExplicitDetailAndErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/all", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusUnprocessableEntity, TypeValidation, "Unprocessable Entity", errors.New("missing"), "production",
		WithDetail(DetailMissingFields),
		WithErrors(map[string]interface{}{"header.x-api-key": FieldRequiredMessage}),
	)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != DetailMissingFields {
		t.Fatalf("expected explicit detail, got %s", body.Detail)
	}
	if body.Errors["header.x-api-key"] != FieldRequiredMessage {
		t.Fatalf("expected field error, got %#v", body.Errors)
	}
}

func TestWrite_LogsClientErrorsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	req := httptest.NewRequest(http.MethodGet, "/all", nil)
	req = req.WithContext(logger.WithContext(req.Context()))

	Write(httptest.NewRecorder(), req, http.StatusUnauthorized, TypeUnauthorized, "Unauthorized", errors.New("invalid api key"), "production")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", entry["level"])
	}
	if entry["path"] != "/all" {
		t.Fatalf("expected path /all, got %v", entry["path"])
	}
}
