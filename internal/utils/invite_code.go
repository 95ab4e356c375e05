package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/crewtide/api/internal/constants"
)

// GenerateInviteCode generates a random 8-character project invite code
// drawn from an alphabet without visually ambiguous characters (no I, O,
// 0, 1), so codes survive being read aloud or copied by hand. Codes are
// uppercase; lookups normalize user input before matching.
func GenerateInviteCode() (string, error) {
	bytes := make([]byte, constants.InviteCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, constants.InviteCodeLength)
	for i, b := range bytes {
		code[i] = constants.InviteCodeAlphabet[int(b)%len(constants.InviteCodeAlphabet)]
	}

	return string(code), nil
}
