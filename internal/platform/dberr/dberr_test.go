// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinedex/internal/platform/apperr"
	"github.com/taibuivan/cinedex/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto the catalog taxonomy.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"not_null", &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "title"}, apperr.CodeValidation},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, apperr.CodeValidation},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeValidation},
		{"deadlock", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, apperr.CodeTransport},
		{"deadline", context.DeadlineExceeded, apperr.CodeTransport},
		{"network", errors.New("dial tcp 10.0.0.1:5432: connect: connection refused"), apperr.CodeTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, apperr.CodeOf(dberr.Wrap(tt.err, "Movie")))
		})
	}
}

/*
TestWrap_PassThrough keeps nil and already-classified errors intact.
*/
func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Movie"))

	original := apperr.NotFound("Genre")
	assert.Same(t, original, dberr.Wrap(original, "Movie"))
}
