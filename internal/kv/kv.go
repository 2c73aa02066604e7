// Package kv defines the string-keyed storage the cart persists into and
// the in-process implementations of it.
package kv

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound indicates the requested key has no value.
var ErrNotFound = errors.New("key not found")

// Backend is a synchronous string-keyed get/set/remove store with no
// transactional guarantees across keys.
type Backend interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Keys lists every stored key in ascending order.
	Keys() ([]string, error)
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateKey rejects keys that cannot be stored portably (e.g. as file names).
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid key %q: must match %s", key, keyPattern.String())
	}
	return nil
}
