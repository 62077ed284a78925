package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when the long URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrInvalidAlias is returned when a requested custom alias fails validation.
	ErrInvalidAlias = errors.New("invalid alias")
	// ErrAliasTaken is returned when a requested custom alias already exists
	// as a short code or an alias.
	ErrAliasTaken = errors.New("alias taken")
	// ErrGenerationExhausted is returned when no free short code was found
	// within the configured number of attempts.
	ErrGenerationExhausted = errors.New("short code generation exhausted")
	// ErrStoreUnavailable is returned when the underlying storage cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrLinkNotFound is returned when no link matches the requested key or ID.
	ErrLinkNotFound = errors.New("link not found")
	// ErrKeyExists is returned by a store when a key is already occupied.
	ErrKeyExists = errors.New("key exists")
	// ErrOwnerRequired is returned when a link is created without an owner.
	ErrOwnerRequired = errors.New("owner required")
)

// KeyConflictError reports which key of a link draft was already taken.
type KeyConflictError struct {
	Key string
}

func (e *KeyConflictError) Error() string {
	return fmt.Sprintf("key %q exists", e.Key)
}

// Is makes errors.Is(err, ErrKeyExists) hold for conflict errors.
func (e *KeyConflictError) Is(target error) bool {
	return target == ErrKeyExists
}
