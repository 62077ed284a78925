// Package shortcode generates short codes and validates the user-facing
// identifiers of a link: custom aliases and destination URLs.
package shortcode

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/trimmer/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the URL-safe alphabet of generated short codes. Characters that
// are easy to confuse when read aloud or typed (0 O o 1 l I) are left out.
const Alphabet = "23456789abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	MinLength = 6
	MaxLength = 8

	MinAliasLength = 3
	MaxAliasLength = 30
	// MaxKeyLength is the longest key the link stores can hold.
	MaxKeyLength   = 64

	MaxURLLength = 2048
)

// DefaultReserved lists the path segments routed by the application itself.
// An alias equal to any of them would be shadowed by those routes.
var DefaultReserved = []string{
	"api",
	"assets",
	"auth",
	"dashboard",
	"docs",
	"favicon.ico",
	"health",
	"link",
	"links",
	"login",
	"logout",
	"robots.txt",
	"signup",
	"static",
	"swagger",
}

// Generator produces random short codes of a fixed length.
type Generator struct {
	length int
}

// NewGenerator returns a Generator for codes of the given length.
func NewGenerator(length int) (*Generator, error) {
	const op = "shortcode.NewGenerator"

	if length < MinLength || length > MaxLength {
		return nil, fmt.Errorf("%s: length must be between %d and %d, got %d", op, MinLength, MaxLength, length)
	}

	return &Generator{length: length}, nil
}

// Length returns the length of the generated codes.
func (g *Generator) Length() int {
	return g.length
}

// Generate returns a new candidate code.
func (g *Generator) Generate() (string, error) {
	const op = "shortcode.Generator.Generate"

	code, err := gonanoid.Generate(Alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return code, nil
}

// AliasValidator checks requested custom aliases.
type AliasValidator struct {
	minLength int
	maxLength int
	reserved  map[string]struct{}
}

// NewAliasValidator returns a validator with the given length bounds. The
// reserved words are matched case-insensitively and extend DefaultReserved.
func NewAliasValidator(minLength, maxLength int, reserved ...string) *AliasValidator {
	if minLength <= 0 {
		minLength = MinAliasLength
	}
	if maxLength < minLength {
		maxLength = MaxAliasLength
	}

	v := &AliasValidator{
		minLength: minLength,
		maxLength: maxLength,
		reserved:  make(map[string]struct{}, len(DefaultReserved)+len(reserved)),
	}
	for _, w := range DefaultReserved {
		v.reserved[w] = struct{}{}
	}
	for _, w := range reserved {
		v.reserved[strings.ToLower(w)] = struct{}{}
	}

	return v
}

// Validate returns an error wrapping entity.ErrInvalidAlias when alias cannot
// be used as a link key.
func (v *AliasValidator) Validate(alias string) error {
	switch {
	case alias == "":
		return fmt.Errorf("%w: alias is empty", entity.ErrInvalidAlias)
	case len(alias) < v.minLength || len(alias) > v.maxLength:
		return fmt.Errorf("%w: alias must be %d to %d characters long", entity.ErrInvalidAlias, v.minLength, v.maxLength)
	case !IsURLSafe(alias):
		return fmt.Errorf("%w: alias may only contain letters, digits, '-' and '_'", entity.ErrInvalidAlias)
	}

	if _, ok := v.reserved[strings.ToLower(alias)]; ok {
		return fmt.Errorf("%w: %q is reserved", entity.ErrInvalidAlias, alias)
	}

	return nil
}

// IsURLSafe reports whether s is non-empty and consists only of
// [A-Za-z0-9_-].
func IsURLSafe(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}

	return true
}

// urlRules accepts absolute http and https URLs with a host.
var urlRules = fmt.Sprintf("required,http_url,max=%d", MaxURLLength)

var validate = validator.New()

// ValidateURL returns an error wrapping entity.ErrInvalidURL unless raw is an
// absolute http or https URL with a host.
func ValidateURL(raw string) error {
	if err := validate.Var(raw, urlRules); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidURL, err)
	}

	return nil
}
