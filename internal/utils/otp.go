package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// LoginCodeLength is the number of digits in a one-time login code.
const LoginCodeLength = 6

var digitBase = big.NewInt(10)

// GenerateLoginCode generates a random numeric one-time login code. Each
// digit is drawn uniformly; a byte reduced mod 10 would lean toward 0-5.
func GenerateLoginCode() (string, error) {
	code := make([]byte, LoginCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, digitBase)
		if err != nil {
			return "", fmt.Errorf("failed to generate login code: %w", err)
		}
		code[i] = byte(n.Int64()) + '0'
	}
	return string(code), nil
}

// MaskPhone hides all but the last four digits of a phone number for logs
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	masked := make([]byte, len(phone))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], phone[len(phone)-4:])
	return string(masked)
}
