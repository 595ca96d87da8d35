package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

func hasCode(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, c := range codes {
		if pgErr.Code == c {
			return true
		}
	}
	return false
}

// IsUniqueViolation reports whether err comes from PostgreSQL rejecting a
// duplicate key.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// IsRetryable reports whether PostgreSQL aborted the transaction because it
// conflicted with a concurrent one, so running it again may succeed.
func IsRetryable(err error) bool {
	return hasCode(err, serializationFailure, deadlockDetected)
}
