package store

import (
	"errors"

	"github.com/avvvet/monopoly-services/internal/gamesvc/engine"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateCode aliases the engine sentinel so the ledger contract holds
// whichever package callers match against.
var ErrDuplicateCode = engine.ErrDuplicateCode

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
