package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors. Context errors pass
// through unmapped. Connection failures and server-side faults become
// domain.ErrPersistenceUnavailable; the original error stays in the chain.
func MapError(err error, entity, id string) error {
	return mapError(err, entity, id)
}

func mapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	prefix := entity
	if id != "" {
		prefix = entity + " " + id
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", prefix, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", prefix, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w", prefix, domain.ErrValidation)
		}
		if isUnavailableClass(pgErr.Code) {
			return fmt.Errorf("%s: %w: %w", prefix, domain.ErrPersistenceUnavailable, err)
		}
		return fmt.Errorf("%s: %w", prefix, err)
	}

	var netErr net.Error
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", prefix, domain.ErrPersistenceUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w: %w", prefix, domain.ErrPersistenceUnavailable, err)
	}

	return fmt.Errorf("%s: %w", prefix, err)
}

// isUnavailableClass reports SQLSTATE classes that mean the store cannot
// serve requests: connection exceptions, insufficient resources, operator
// intervention and system errors.
func isUnavailableClass(code string) bool {
	if len(code) < 2 {
		return false
	}
	switch code[:2] {
	case "08", "53", "57", "58":
		return true
	}
	return false
}
