package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/yukikurage/project-management-api/internal/constants"
)

// GenerateJoinCode returns a random uppercase alphanumeric code of constants.JoinCodeLength characters.
func GenerateJoinCode() (string, error) {
	alphabet := constants.JoinCodeAlphabet
	max := big.NewInt(int64(len(alphabet)))

	code := make([]byte, constants.JoinCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
