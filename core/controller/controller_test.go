package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookmeet-api/core/errors"

	"github.com/labstack/echo/v4"
)

func TestBadRequestCarriesValidationDetail(t *testing.T) {
	h := NewBaseController()

	httpErr := h.BadRequest(errors.ErrInvalidRequestData, "Invalid request body",
		NewValidationError("body", "unexpected end of JSON input"))

	if httpErr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", httpErr.Code)
	}

	resp, ok := httpErr.Message.(*ErrorResponse)
	if !ok {
		t.Fatalf("message is %T, want *ErrorResponse", httpErr.Message)
	}
	if resp.Code != errors.ErrInvalidRequestData {
		t.Fatalf("code = %s, want %s", resp.Code, errors.ErrInvalidRequestData)
	}

	detail, ok := resp.Details.(ValidationError)
	if !ok {
		t.Fatalf("details is %T, want ValidationError", resp.Details)
	}
	if detail.Field != "body" || detail.Message == "" {
		t.Fatalf("unexpected validation detail: %+v", detail)
	}
}

func TestErrorResponseStatusMapping(t *testing.T) {
	h := NewBaseController()

	tests := []struct {
		name string
		code errors.ErrorCode
		want int
	}{
		{"invalid input", errors.ErrInvalidInput, http.StatusBadRequest},
		{"invalid request data", errors.ErrInvalidRequestData, http.StatusBadRequest},
		{"not found", errors.ErrNotFound, http.StatusNotFound},
		{"booking conflict", errors.ErrBookingConflict, http.StatusConflict},
		{"already exists", errors.ErrAlreadyExists, http.StatusConflict},
		{"unauthorized", errors.ErrUnauthorized, http.StatusUnauthorized},
		{"too many requests", errors.ErrTooManyRequests, http.StatusTooManyRequests},
		{"internal", errors.ErrInternalServer, http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)

			appErr := errors.NewAppError(tt.code, "boom", nil)
			if err := h.ErrorResponse(ctx, appErr); err != nil {
				t.Fatalf("ErrorResponse returned %v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body["message"] != "boom" {
				t.Fatalf("message = %v, want boom", body["message"])
			}
		})
	}
}
