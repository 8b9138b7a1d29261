package domain

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// idPattern matches the 24-character lowercase hex identifiers used for all
// catalog records.
var idPattern = regexp.MustCompile(`^[a-f0-9]{24}$`)

// NewID returns a fresh 24-character lowercase hex identifier.
func NewID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ValidID reports whether s is a well-formed record identifier.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}
