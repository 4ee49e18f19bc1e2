package shortener

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/teris-io/shortid"

	"github.com/MrSnakeDoc/shorty/internal/domain"
)

// Generator produces candidate short codes. Candidates are not guaranteed
// unique; the link store decides.
type Generator interface {
	NewCode() (string, error)
}

// ─────────────────────────────────────────────────────────────────
// shortid
// ─────────────────────────────────────────────────────────────────

// ShortIDGenerator wraps teris-io/shortid. Codes are at least 9 symbols from
// a 64 symbol alphabet and are safe to request concurrently.
type ShortIDGenerator struct {
	sid *shortid.Shortid
}

// NewShortIDGenerator creates a generator for the given worker slot (0-31).
// Distinct replicas should use distinct workers.
func NewShortIDGenerator(worker uint8, seed uint64) (*ShortIDGenerator, error) {
	sid, err := shortid.New(worker, shortid.DefaultABC, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create shortid generator: %w", err)
	}
	return &ShortIDGenerator{sid: sid}, nil
}

func (g *ShortIDGenerator) NewCode() (string, error) {
	return g.sid.Generate()
}

// ─────────────────────────────────────────────────────────────────
// crypto/rand
// ─────────────────────────────────────────────────────────────────

const (
	base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// MinRandomLength keeps the random space at 62^8 or more.
	MinRandomLength = 8
)

// RandomGenerator draws fixed length base62 codes from crypto/rand.
type RandomGenerator struct {
	length int
}

// NewRandomGenerator returns a generator producing codes of length symbols.
// Lengths below MinRandomLength are raised to it, lengths above the column
// width are capped.
func NewRandomGenerator(length int) *RandomGenerator {
	if length < MinRandomLength {
		length = MinRandomLength
	}
	if length > domain.MaxShortCodeLength {
		length = domain.MaxShortCodeLength
	}
	return &RandomGenerator{length: length}
}

func (g *RandomGenerator) NewCode() (string, error) {
	max := big.NewInt(int64(len(base62Alphabet)))
	code := make([]byte, g.length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		code[i] = base62Alphabet[n.Int64()]
	}
	return string(code), nil
}

// Length returns the size of generated codes.
func (g *RandomGenerator) Length() int {
	return g.length
}
