package planner

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data URI")

// ParseDataURI splits a data:<mime>;base64,<payload> URI into its MIME type
// and decoded payload.
func ParseDataURI(raw string) (string, []byte, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "data:") {
		return "", nil, ErrInvalidDataURI
	}

	meta, encoded, found := strings.Cut(trimmed[len("data:"):], ",")
	if !found {
		return "", nil, ErrInvalidDataURI
	}

	mimeType, _, _ := strings.Cut(meta, ";")
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrInvalidDataURI
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, ErrInvalidDataURI
	}
	return strings.ToLower(strings.TrimSpace(mimeType)), payload, nil
}

// DocumentContentHash returns the cache key for an uploaded document: the
// hex SHA-256 of the full data URI.
func DocumentContentHash(dataURI string) string {
	sum := sha256.Sum256([]byte(dataURI))
	return hex.EncodeToString(sum[:])
}
