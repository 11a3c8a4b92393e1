// Package domain provides type-safe value objects shared across features.
// Parse functions sit at trust boundaries (handlers, API inputs) so services
// only ever see validated values.
package domain

import (
	"strings"

	dErrors "brickgate/pkg/domain-errors"
)

// Address is a checksummed-or-not EVM address, stored lower-cased so map keys
// and equality checks are case-insensitive by construction.
type Address string

// ZeroAddress is the EVM zero value, used by contracts to mean "unset".
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

const addressLen = 42

// ParseAddress validates the 0x-prefixed 20-byte hex form and normalizes case.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "address is required")
	}
	if len(s) != addressLen || !strings.HasPrefix(s, "0x") {
		return "", dErrors.New(dErrors.CodeBadRequest, "address must be a 0x-prefixed 40-hex-digit string")
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return "", dErrors.New(dErrors.CodeBadRequest, "address contains non-hex characters")
		}
	}
	return Address(strings.ToLower(s)), nil
}

func (a Address) String() string { return string(a) }

// IsZero reports whether the address is empty or the contract zero value.
func (a Address) IsZero() bool {
	return a == "" || a == ZeroAddress
}

// Equal compares case-insensitively; addresses from outside ParseAddress may
// carry mixed case.
func (a Address) Equal(other Address) bool {
	return strings.EqualFold(string(a), string(other))
}

// Short returns the 0x1234…abcd display form used in logs.
func (a Address) Short() string {
	if len(a) < 10 {
		return string(a)
	}
	return string(a[:6]) + "…" + string(a[len(a)-4:])
}
