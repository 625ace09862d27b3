// Package repository is the data access layer. Every operation is a single
// parameterized statement or a short transaction against the gorm handle,
// and every failure is reported through the errors declared here so the
// HTTP layer can pick a status code without inspecting driver errors.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBookNotFound = errors.New("book not found")

	// ErrDuplicateISBN is returned when a create or update would break the
	// unique isbn index.
	ErrDuplicateISBN = errors.New("isbn already exists")

	// ErrBookHasOrders is returned when deleting a book that orders still
	// reference.
	ErrBookHasOrders = errors.New("book is referenced by orders")

	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError reports the first input constraint a call violated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// StoreError wraps any failure of the underlying store that does not map to
// one of the domain errors above.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOverflow     = "22003"
)

// MaxAmount is the largest value a numeric(10,2) money column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

func isNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgNumericOverflow
}
