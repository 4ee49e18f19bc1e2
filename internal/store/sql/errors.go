package sqlstore

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/MrSnakeDoc/shorty/internal/domain"
)

var (
	// ErrDuplicateCode is returned when an insert hits the short_code unique index.
	ErrDuplicateCode = domain.ErrDuplicateShortCode
	// ErrNotFound is returned when no row matches.
	ErrNotFound = domain.ErrLinkNotFound
)

// translateError maps driver specific failures onto the package sentinels.
// Anything it does not recognise is returned untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if isUniqueViolation(err) {
		return ErrDuplicateCode
	}

	return err
}

// shortCodeIndex is the unique index on links.short_code, see linkRecord.
const shortCodeIndex = "idx_links_short_code"

// isUniqueViolation reports a conflict on the short code only. Other unique
// violations, such as a primary key clash, are plain store failures.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == shortCodeIndex
	}

	// SQLite reports "UNIQUE constraint failed: links.short_code (2067)"
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "links.short_code")
}
