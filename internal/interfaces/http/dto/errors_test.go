package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"no active lease maps to 404", ErrCodeNoActiveLease, http.StatusNotFound},
		{"nothing outstanding maps to 422", ErrCodeNothingOutstanding, http.StatusUnprocessableEntity},
		{"nothing to confirm maps to 422", ErrCodeNothingToConfirm, http.StatusUnprocessableEntity},
		{"rent not configured maps to 422", ErrCodeRentNotConfigured, http.StatusUnprocessableEntity},
		{"unauthorized maps to 401", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"already exists maps to 409", ErrCodeAlreadyExists, http.StatusConflict},
		{"unknown code defaults to 500", "ERR_SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNoActiveLease, NormalizeErrorCode("NO_ACTIVE_LEASE"))
	assert.Equal(t, ErrCodeNothingToConfirm, NormalizeErrorCode("NOTHING_TO_CONFIRM"))
	assert.Equal(t, ErrCodeBadRequest, NormalizeErrorCode("INVALID_SESSION"))
	assert.Equal(t, ErrCodeUnauthorized, NormalizeErrorCode("UNAUTHORIZED"))

	// Already normalized or unknown codes pass through
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Lease not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Lease not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"tier": "GOLD"})

	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
}
