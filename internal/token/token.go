package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Numbers   = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{};:,.<>/?"

	MinLength = 1
	MaxLength = 512
)

// ErrInvalidLength is returned for a length outside [MinLength, MaxLength].
var ErrInvalidLength = errors.New("invalid token length")

// Options selects the character classes and length of a token.
type Options struct {
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
	Length    int
}

// DefaultOptions returns letters and digits, 128 characters long.
func DefaultOptions() Options {
	return Options{
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Length:    128,
	}
}

// Charset returns the characters a token may contain, in class order.
func (o Options) Charset() string {
	var chars string
	if o.Uppercase {
		chars += Uppercase
	}
	if o.Lowercase {
		chars += Lowercase
	}
	if o.Numbers {
		chars += Numbers
	}
	if o.Symbols {
		chars += Symbols
	}
	return chars
}

// Generate returns a random token drawn uniformly from the selected
// character classes. With no class selected the token is empty.
func Generate(opts Options) (string, error) {
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidLength, opts.Length, MinLength, MaxLength)
	}
	chars := opts.Charset()
	if chars == "" {
		return "", nil
	}

	n := big.NewInt(int64(len(chars)))
	out := make([]byte, opts.Length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		out[i] = chars[idx.Int64()]
	}
	return string(out), nil
}

// UUID returns a random version 4 UUID.
func UUID() string {
	return uuid.NewString()
}
