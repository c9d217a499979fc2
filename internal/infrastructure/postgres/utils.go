package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta la violación de clave única (SQLSTATE 23505).
// Con ON CONFLICT DO NOTHING solo aparece ante constraints que el loader
// no cubre, como un índice único secundario en la tabla destino.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
