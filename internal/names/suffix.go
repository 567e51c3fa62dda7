// Package names provides deterministic resource naming for Azure container
// deployments, deriving short identity-scoped suffixes and composing them into
// names that satisfy each Azure resource provider's naming constraints.
//
// Every operator who runs the deployment tooling gets their own set of
// resources (registry, Container Apps environment, container app, container
// instance) without having to choose names by hand. The names are derived from
// the signed-in principal's object ID, so two operators in the same
// subscription never collide and the same operator always gets the same names
// back on a later run.
//
// NAME DERIVATION:
//   - Suffix: first 8 lowercase hex characters of SHA-256(identity token)
//   - Resource name: lowercase(prefix + suffix), checked against per-category rules
//   - Name set: one suffix per run, reused for every resource name in that run
//
// FAILURE MODES:
// Empty identities and names outside the target alphabet fail with
// ErrInvalidInput. Names longer than the target's limit fail with
// ErrNameTooLong. Names are never truncated: truncation can map two different
// prefixes onto the same resource name.
//
// All functions in this package are pure and safe for concurrent use.
//
// Examples: "acre861b2ea", "aca-env-e861b2ea", "docapi-e861b2ea"
package names

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// SuffixLength is the number of hex characters kept from the identity digest.
const SuffixLength = 8

var (
	// ErrInvalidInput reports an empty identity, an empty prefix, a malformed
	// suffix, or a name containing characters the target does not allow.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNameTooLong reports a composed name that exceeds the target's
	// maximum length.
	ErrNameTooLong = errors.New("name too long")
)

// DeriveSuffix maps an opaque identity token to an 8-character lowercase hex
// suffix. The digest is SHA-256 over the token's UTF-8 bytes; the first 8 hex
// characters are kept, giving 32 bits of collision resistance per identity.
//
// An empty token is a failure of the caller's identity lookup and is reported
// as ErrInvalidInput rather than replaced with a default.
func DeriveSuffix(identityToken string) (string, error) {
	if identityToken == "" {
		return "", fmt.Errorf("%w: identity token cannot be empty", ErrInvalidInput)
	}

	sum := sha256.Sum256([]byte(identityToken))
	return hex.EncodeToString(sum[:])[:SuffixLength], nil
}

// IsSuffix reports whether s has the exact shape DeriveSuffix produces.
func IsSuffix(s string) bool {
	if len(s) != SuffixLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
