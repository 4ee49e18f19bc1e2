package domain

import "errors"

// Allocation error kinds. Callers branch on them with errors.Is.
var (
	ErrInvalidURL          = errors.New("invalid url")
	ErrInvalidCustomCode   = errors.New("invalid custom code")
	ErrCodeAlreadyExists   = errors.New("short code already exists")
	ErrAllocationExhausted = errors.New("could not allocate a unique short code")
	ErrStoreUnavailable    = errors.New("link store unavailable")
	ErrMissingUser         = errors.New("missing user identity")
)

var (
	// ErrDuplicateShortCode is the conflict a link store reports when an insert
	// violates the short code uniqueness constraint.
	ErrDuplicateShortCode = errors.New("duplicate short code")
	// ErrLinkNotFound is returned by lookups and deletes that match no link.
	ErrLinkNotFound = errors.New("link not found")
)

var messages = []struct {
	kind error
	msg  string
}{
	{ErrInvalidURL, "Please enter a valid URL (including http:// or https://)"},
	{ErrInvalidCustomCode, "Custom code may only contain letters, digits and hyphens (max 20 characters) and must not be a reserved word"},
	{ErrCodeAlreadyExists, "This short code is already taken"},
	{ErrAllocationExhausted, "Could not generate a unique short code, please try again later"},
	{ErrStoreUnavailable, "Failed to create short link, please try again later"},
	{ErrMissingUser, "You must be signed in to create links"},
}

// ErrorMessage renders a human-readable message for an allocation error.
// Unknown errors get the generic store message so internals never leak.
func ErrorMessage(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.kind) {
			return m.msg
		}
	}
	return "Failed to create short link, please try again later"
}

// ErrorKind returns a stable label for an allocation error, used in metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrInvalidCustomCode):
		return "invalid_custom_code"
	case errors.Is(err, ErrCodeAlreadyExists):
		return "code_already_exists"
	case errors.Is(err, ErrAllocationExhausted):
		return "allocation_exhausted"
	case errors.Is(err, ErrMissingUser):
		return "missing_user"
	default:
		return "store_unavailable"
	}
}
