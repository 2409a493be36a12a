package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"studymate/internal/domain"
	"studymate/internal/httputil"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "wrapped not found sentinel",
			err:        fmt.Errorf("file abc: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrapped validation sentinel",
			err:        fmt.Errorf("%w: name is required", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "forbidden error type",
			err:        &domain.ForbiddenError{Message: "no access to this course"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "conflict error type",
			err:        &domain.ConflictError{Message: "already exists", ResourceType: "folder", ResourceID: "folder-1"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "wrapped conflict sentinel",
			err:        fmt.Errorf("folder 'Week 1': %w", domain.ErrConflict),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unsupported type error",
			err:        &domain.UnsupportedTypeError{ContentType: "application/x-msdownload"},
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "transient storage error",
			err:        &domain.StorageError{Op: "put", Transient: true, Err: errors.New("connection refused")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "permanent storage error",
			err:        &domain.StorageError{Op: "put", Err: errors.New("access denied")},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unknown error",
			err:        errors.New("something broke"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}

			var problem httputil.ProblemDetail
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("response is not valid problem JSON: %v", err)
			}
			if problem.Status != tt.wantStatus {
				t.Errorf("problem status = %d, want %d", problem.Status, tt.wantStatus)
			}
		})
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, errors.New("pq: password authentication failed"))

	var problem httputil.ProblemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("response is not valid problem JSON: %v", err)
	}
	if problem.Detail != "internal server error" {
		t.Errorf("detail = %q, internal errors must not leak", problem.Detail)
	}
}
