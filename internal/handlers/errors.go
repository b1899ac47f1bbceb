package handlers

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the Postgres error code for a unique constraint violation
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint failure, e.g. a
// replayed messageId/pollId/noteId or two racing votes with the same nullifier.
// Without this mapping those failures would surface as generic 500s.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isNotFound reports whether err means the requested row does not exist
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
