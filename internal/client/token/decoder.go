package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Claims is the subset of the token payload the client cares about. The
// userID and username keys match what the server signs into the token.
type Claims struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
}

// DecodeClaims extracts the claims from a JWT payload without verifying
// the signature. The server remains the authority on token validity; this
// only recovers the identity for display and local state. Returns nil on
// any malformed input.
func DecodeClaims(tok string) *Claims {
	parts := strings.Split(tok, ".")
	if len(parts) < 2 {
		return nil
	}

	payload := strings.TrimRight(parts[1], "=")
	payload = strings.ReplaceAll(payload, "-", "+")
	payload = strings.ReplaceAll(payload, "_", "/")

	decoded, err := base64.RawStdEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	if !utf8.Valid(decoded) {
		return nil
	}

	var claims Claims
	if err := json.Unmarshal(decoded, &claims); err != nil {
		return nil
	}
	return &claims
}
