package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Akhil21232123/hirematrix/internal/models"
)

func performValidated(body string) (*httptest.ResponseRecorder, *models.SubmitRoundRequest) {
	var captured *models.SubmitRoundRequest
	handler := ValidateRequest[*models.SubmitRoundRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetValidatedRequest[*models.SubmitRoundRequest](r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/submit", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestValidateRequestPassesValidBody(t *testing.T) {
	rec, captured := performValidated(`{"code":"function solve() {}"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured == nil || captured.Code != "function solve() {}" {
		t.Fatalf("validated request not stored in context: %+v", captured)
	}
}

func TestValidateRequestRejectsInvalidJSON(t *testing.T) {
	rec, _ := performValidated(`{"code":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "invalid_json" {
		t.Fatalf("expected invalid_json, got %q", resp.Code)
	}
}

func TestValidateRequestRejectsFailedValidation(t *testing.T) {
	rec, _ := performValidated(`{"code":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp models.ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Code != "missing_code" {
		t.Fatalf("validator's own error code expected, got %q", resp.Code)
	}
}
