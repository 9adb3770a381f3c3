// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinedex/internal/platform/apperr"
)

/*
TestAppError_Constructors checks that every constructor maps to its code and status.
*/
func TestAppError_Constructors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Movie"), apperr.CodeNotFound, http.StatusNotFound},
		{"validation", apperr.ValidationError("Validation failed"), apperr.CodeValidation, http.StatusBadRequest},
		{"transport", apperr.Transport(cause), apperr.CodeTransport, http.StatusServiceUnavailable},
		{"partial_relation", apperr.PartialRelation(cause), apperr.CodePartialRelation, http.StatusMultiStatus},
		{"internal", apperr.Internal(cause), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

/*
TestAppError_ChainHelpers verifies lookup through wrapped errors.
*/
func TestAppError_ChainHelpers(t *testing.T) {
	cause := errors.New("timeout")
	wrapped := fmt.Errorf("update movie: %w", apperr.Transport(cause))

	require.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.IsCode(wrapped, apperr.CodeTransport))
	assert.False(t, apperr.IsCode(wrapped, apperr.CodeNotFound))
	assert.Equal(t, apperr.CodeTransport, apperr.CodeOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(errors.New("plain")))
	assert.Nil(t, apperr.As(errors.New("plain")))
}
