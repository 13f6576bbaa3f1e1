// Package agentname builds display names for agents created by breeding.
package agentname

import (
	"strings"

	"github.com/google/uuid"
)

const offspringPrefix = "Baby"

// Part normalizes one parent name into a name segment: trimmed, with inner
// whitespace collapsed to underscores. Empty names become "Unknown".
func Part(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "Unknown"
	}
	return strings.Join(fields, "_")
}

// Offspring returns a name combining both parents plus a short unique token,
// e.g. "Baby_Rex_Nova_1f3a9c2e".
func Offspring(parentA, parentB string) string {
	return OffspringWithToken(parentA, parentB, Token())
}

// OffspringWithToken is Offspring with a caller supplied token.
func OffspringWithToken(parentA, parentB, token string) string {
	return strings.Join([]string{offspringPrefix, Part(parentA), Part(parentB), token}, "_")
}

// Token returns 8 hex characters from a random UUID.
func Token() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
