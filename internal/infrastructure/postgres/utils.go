package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation código SQLSTATE de violación de constraint UNIQUE.
const pgUniqueViolation = "23505"

// isUniqueViolation indica si el error viene de un constraint UNIQUE de la base
// (por ejemplo el email de usuario). Los adaptadores lo traducen a ErrDuplicate
// o ErrEmailAlreadyExists según la tabla.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
