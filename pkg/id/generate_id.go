package id

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns a random v4 UUID as 32 lowercase hex characters.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Valid reports whether s is a request id we issue or accept: the 32-hex
// form or a canonical UUID. Case and surrounding space are ignored.
func Valid(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if reHex32.MatchString(s) {
		return true
	}
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
