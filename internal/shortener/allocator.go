package shortener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MrSnakeDoc/shorty/internal/domain"
	"github.com/MrSnakeDoc/shorty/internal/logger"
	"github.com/MrSnakeDoc/shorty/internal/metrics"
)

// DefaultMaxAttempts bounds the inserts tried for one generated code.
const DefaultMaxAttempts = 5

// Store is the persistence capability the allocator needs. Insert must be a
// single atomic write that fails with domain.ErrDuplicateShortCode when the
// short code is already taken.
type Store interface {
	Insert(ctx context.Context, link *domain.Link) error
}

// ReservedChecker reports codes that must never be handed out.
type ReservedChecker interface {
	IsReserved(code string) bool
}

// Request is one allocation ask. An empty CustomCode means "generate one".
type Request struct {
	URL        string
	UserID     string
	CustomCode string
}

// Options tunes an Allocator. Zero values pick defaults.
type Options struct {
	MaxAttempts int
	RetryDelay  time.Duration
	Reserved    ReservedChecker
	Metrics     *metrics.Metrics
}

// Allocator assigns short codes by inserting first and letting the store's
// uniqueness constraint arbitrate. It never checks availability up front.
type Allocator struct {
	store       Store
	gen         Generator
	reserved    ReservedChecker
	metrics     *metrics.Metrics
	logger      logger.Logger
	maxAttempts int
	retryDelay  time.Duration
}

// errCandidateRejected marks a generated code refused before reaching the store.
var errCandidateRejected = errors.New("candidate short code rejected")

// NewAllocator creates a new allocator
func NewAllocator(store Store, gen Generator, log logger.Logger, opts Options) *Allocator {
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	return &Allocator{
		store:       store,
		gen:         gen,
		reserved:    opts.Reserved,
		metrics:     opts.Metrics,
		logger:      log.Named("allocator"),
		maxAttempts: attempts,
		retryDelay:  opts.RetryDelay,
	}
}

// Allocate validates req and persists a new link with a unique short code.
// Errors are always one of the domain allocation kinds and can be matched
// with errors.Is.
func (a *Allocator) Allocate(ctx context.Context, req Request) (link *domain.Link, err error) {
	defer func() {
		a.metrics.Allocation(domain.ErrorKind(err))
	}()

	userID := strings.TrimSpace(req.UserID)
	url := strings.TrimSpace(req.URL)
	// custom codes are taken verbatim, whitespace is outside the character class
	code := req.CustomCode

	if userID == "" {
		return nil, domain.ErrMissingUser
	}
	if !domain.ValidURL(url) {
		return nil, domain.ErrInvalidURL
	}

	if code != "" {
		if !domain.ValidCustomCode(code) || a.isReserved(code) {
			return nil, domain.ErrInvalidCustomCode
		}
		return a.allocateCustom(ctx, url, userID, code)
	}

	return a.allocateGenerated(ctx, url, userID)
}

// allocateCustom makes exactly one insert. A collision is final.
func (a *Allocator) allocateCustom(ctx context.Context, url, userID, code string) (*domain.Link, error) {
	link := &domain.Link{UserID: userID, URL: url, ShortCode: code}

	err := a.store.Insert(ctx, link)
	switch {
	case err == nil:
		a.logger.Info("custom short code allocated",
			logger.String("code", code),
			logger.String("user_id", userID))
		return link, nil
	case errors.Is(err, domain.ErrDuplicateShortCode):
		a.metrics.Collision("custom")
		return nil, domain.ErrCodeAlreadyExists
	default:
		return nil, a.unavailable(ctx, err)
	}
}

// allocateGenerated retries with a fresh candidate on every collision, up to
// maxAttempts inserts.
func (a *Allocator) allocateGenerated(ctx context.Context, url, userID string) (*domain.Link, error) {
	attempts := 0
	backoff := retry.WithMaxRetries(uint64(a.maxAttempts-1), retry.BackoffFunc(func() (time.Duration, bool) {
		return a.retryDelay, false
	}))

	link, err := retry.DoValue(ctx, backoff, func(ctx context.Context) (*domain.Link, error) {
		attempts++

		code, err := a.gen.NewCode()
		if err != nil {
			return nil, fmt.Errorf("code generator: %w", err)
		}

		if a.isReserved(code) || len(code) > domain.MaxShortCodeLength {
			a.metrics.Collision("reserved")
			return nil, retry.RetryableError(errCandidateRejected)
		}

		candidate := &domain.Link{UserID: userID, URL: url, ShortCode: code}
		if err := a.store.Insert(ctx, candidate); err != nil {
			if errors.Is(err, domain.ErrDuplicateShortCode) {
				a.metrics.Collision("generated")
				a.logger.Debug("generated short code collided",
					logger.String("code", code),
					logger.Int("attempt", attempts))
				return nil, retry.RetryableError(err)
			}
			return nil, err
		}
		return candidate, nil
	})

	a.metrics.Attempts(attempts)

	switch {
	case err == nil:
		a.logger.Info("short code allocated",
			logger.String("code", link.ShortCode),
			logger.String("user_id", userID),
			logger.Int("attempts", attempts))
		return link, nil
	case ctx.Err() != nil:
		return nil, a.unavailable(ctx, err)
	case errors.Is(err, domain.ErrDuplicateShortCode), errors.Is(err, errCandidateRejected):
		a.logger.Warn("short code space exhausted",
			logger.Int("attempts", attempts))
		return nil, fmt.Errorf("%w after %d attempts", domain.ErrAllocationExhausted, attempts)
	default:
		return nil, a.unavailable(ctx, err)
	}
}

func (a *Allocator) unavailable(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = fmt.Errorf("%w: %w", err, ctxErr)
	}
	a.logger.Error("link store insert failed", logger.Error(err))
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func (a *Allocator) isReserved(code string) bool {
	return a.reserved != nil && a.reserved.IsReserved(code)
}

// MaxAttempts returns the configured insert budget for generated codes.
func (a *Allocator) MaxAttempts() int {
	return a.maxAttempts
}
