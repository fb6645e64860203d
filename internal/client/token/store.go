// Package token persists the bearer token between CLI invocations and
// decodes its payload without verifying the signature.
package token

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	tokenFile = "auth_token"
	userFile  = "auth_user.json"
)

// User is the locally cached identity derived from the token payload.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Store keeps the raw bearer token and a cached user identity in a state
// directory. Every operation is best effort: read failures yield zero
// values and write failures are silently dropped, so a broken state
// directory degrades to a logged-out session rather than an error.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Token returns the persisted bearer token, or "" when absent or unreadable.
func (s *Store) Token() string {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetToken persists the bearer token. An empty token removes the slot.
func (s *Store) SetToken(tok string) {
	if tok == "" {
		os.Remove(filepath.Join(s.dir, tokenFile))
		return
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return
	}
	os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(tok), 0o600)
}

// CachedUser returns the cached identity, or nil when absent or corrupt.
func (s *Store) CachedUser() *User {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// SetCachedUser persists the identity cache. A nil user removes the slot.
func (s *Store) SetCachedUser(u *User) {
	if u == nil {
		os.Remove(filepath.Join(s.dir, userFile))
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return
	}
	os.WriteFile(filepath.Join(s.dir, userFile), data, 0o600)
}

// Clear removes all persisted session state.
func (s *Store) Clear() {
	os.Remove(filepath.Join(s.dir, tokenFile))
	os.Remove(filepath.Join(s.dir, userFile))
}
