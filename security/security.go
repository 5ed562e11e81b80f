package security

import (
	"crypto/rand"
	"math/big"
	"net/http"
)

const tempPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TempPasswordLength is the length of the passwords issued by forgot-password.
const TempPasswordLength = 8

// GenerateTempPassword returns a random alphanumeric password drawn from crypto/rand.
func GenerateTempPassword() (string, error) {
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	b := make([]byte, TempPasswordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(b), nil
}

// SanitizeHeaders removes credentials from a copy of headers before they are logged.
func SanitizeHeaders(headers http.Header) http.Header {
	out := headers.Clone()
	for _, header := range []string{"Authorization", "Cookie", "Set-Cookie"} {
		out.Del(header)
	}
	return out
}
