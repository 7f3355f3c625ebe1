package domain

import "strings"

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// minPasswordLength is the policy floor, not a hashing constraint.
const minPasswordLength = 8

// CheckPassword validates the composite password policy: at least eight
// characters with one lowercase letter, one uppercase letter, one digit and
// one symbol from the fixed set. Returns ErrWeakPassword on any violation.
func CheckPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	if !lower || !upper || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}
