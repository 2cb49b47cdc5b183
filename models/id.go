package models

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID returns a 24-character hex entity id (12 random bytes).
func NewID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// ValidID reports whether s is a well-formed 24-character hex entity id.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}
