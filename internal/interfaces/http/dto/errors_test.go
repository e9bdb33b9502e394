package dto

import (
	"net/http"
	"testing"

	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeUnauthorized, http.StatusForbidden},
		{shared.CodeIllegalTransition, http.StatusUnprocessableEntity},
		{shared.CodeInvalidReading, http.StatusUnprocessableEntity},
		{shared.CodeConflict, http.StatusConflict},
		{shared.CodeInvalidInput, http.StatusBadRequest},
		{shared.CodePersistence, http.StatusInternalServerError},
		{ErrCodeUnauthenticated, http.StatusUnauthorized},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{"SOMETHING_NOVEL", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
