package test

import (
	"strings"

	"github.com/google/uuid"
)

// RandomName returns a short unique display name.
func RandomName() string {
	return "user-" + uuid.NewString()[:8]
}

// RandomEmail returns a unique lower-case address on the shop.io domain.
func RandomEmail() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + "@shop.io"
}

// RandomPassword returns a password long enough to pass strength checks.
func RandomPassword() string {
	return uuid.NewString()
}
