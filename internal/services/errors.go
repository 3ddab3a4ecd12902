// internal/services/errors.go
package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared across services. Handlers classify these into
// response codes; anything else is treated as an infrastructure failure.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateName      = errors.New("name already exists")
	ErrDuplicateSKU       = errors.New("duplicate SKU or barcode")
	ErrSentinelCategory   = errors.New("the Uncategorized category cannot be modified")
	ErrNoProductsSelected = errors.New("no products selected")
	ErrInvalidQuantity    = errors.New("quantity must be a non-negative integer")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailNotVerified   = errors.New("email address not verified")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrAIUnavailable      = errors.New("AI service unavailable")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
