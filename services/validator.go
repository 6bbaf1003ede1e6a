package services

import "strings"

// ValidateEmail accepts addresses with exactly one '@' separating a non-empty
// local part from a non-empty domain.
func ValidateEmail(email string) bool {
	if strings.Count(email, "@") != 1 {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

// ValidatePasswordStrength requires at least 10 characters, at least 2 digits
// and at least 2 uppercase letters.
func ValidatePasswordStrength(password string) bool {
	if len(password) < 10 {
		return false
	}

	digits, uppers := 0, 0
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r >= 'A' && r <= 'Z':
			uppers++
		}
	}

	return digits >= 2 && uppers >= 2
}
