package passwordresettoken

import (
	"crypto/rand"
	"encoding/base64"
	"ums/internal/core/domain/user"
)

const TOKEN_BYTES = 32

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GeneratePasswordResetToken returns 256 random bits, URL-safe base64 encoded.
func (g *Generator) GeneratePasswordResetToken() (user.PasswordResetToken, error) {
	b := make([]byte, TOKEN_BYTES)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return user.PasswordResetToken(base64.RawURLEncoding.EncodeToString(b)), nil
}
