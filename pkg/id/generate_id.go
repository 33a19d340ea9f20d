package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

const ApplicationPrefix = "App_"

// NewApplicationID returns "App_<projectID>_<uuid hex>". The random v4 suffix
// keeps ids unique without a lookup.
func NewApplicationID(projectID string) string {
	u := uuid.New()
	return ApplicationPrefix + strings.TrimSpace(projectID) + "_" + hex.EncodeToString(u[:])
}
