package passwordhasher

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"ums/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes HMAC-SHA256(secret, password) so that the bcrypt input is always
// 44 bytes, well below its 72 byte limit, whatever the password length.
type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		panic(fmt.Sprintf("bcrypt cost must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, cost))
	}
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword(h.peppered(password), h.cost)
	if err != nil {
		return hash, fmt.Errorf("could not hash password: %w", err)
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.peppered(password))
	return err == nil
}

func (h *Bcrypt) peppered(password user.RawPassword) []byte {
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write([]byte(password))
	sum := mac.Sum(nil)
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum)
	return encoded
}
