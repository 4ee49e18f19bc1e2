package domain

import "time"

// MaxShortCodeLength is the persisted upper bound of a short code.
const MaxShortCodeLength = 20

// Link represents a shortened URL owned by a single user.
//
// A Link is uniquely identified by its ID, and its ShortCode is unique
// across every Link in the store.
type Link struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is generated by the store at creation and never reused.
	ID string

	// UserID is the opaque identifier of the owner.
	// Ownership never transfers.
	UserID string

	// ─────────────────────────────
	// Mapping (immutable)
	// ─────────────────────────────

	// URL is the original long address.
	// Example: https://example.com/some/very/long/path
	URL string

	// ShortCode is the compact token appended to the base URL.
	// Example: my-link, 4fQ_x9Kd2
	ShortCode string

	// ─────────────────────────────
	// Timestamps
	// ─────────────────────────────

	// CreatedAt is set once at creation.
	CreatedAt time.Time

	// UpdatedAt is refreshed on any mutation.
	UpdatedAt time.Time
}
