package security

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const resetTokenSize = 32

// MakeVerifyCode returns a fresh numeric verification code of n digits,
// zero-padded. Codes are short so they can be typed from a mail client.
func MakeVerifyCode(n int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < n; i++ {
		max.Mul(max, big.NewInt(10))
	}

	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	code := v.String()
	for len(code) < n {
		code = "0" + code
	}

	return code, nil
}

// MakeResetToken returns an unguessable hex token for password reset links.
func MakeResetToken() (string, error) {
	b := make([]byte, resetTokenSize)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
