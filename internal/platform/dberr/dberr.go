// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// the catalog error taxonomy.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/cinedex/internal/platform/apperr"
)

// Wrap inspects a database error and classifies it into an [apperr.AppError].
//
// # Classification
//
//   - pgx.ErrNoRows: NOT_FOUND for the named resource.
//   - Constraint and input SQLSTATEs: VALIDATION_ERROR (the store rejected the fields).
//   - Everything else (network, timeout, server faults): TRANSPORT_ERROR.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Remote field rejection
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.NotNullViolation,
			pgerrcode.CheckViolation,
			pgerrcode.ForeignKeyViolation,
			pgerrcode.InvalidTextRepresentation,
			pgerrcode.StringDataRightTruncationDataException,
			pgerrcode.NumericValueOutOfRange:
			ae := apperr.ValidationError("The catalog store rejected the submitted fields", apperr.FieldError{
				Field:   pgErr.ColumnName,
				Message: pgErr.Message,
			})
			ae.Cause = err
			return ae
		}
	}

	// 3. Network, timeout and server faults
	return apperr.Transport(err)
}
