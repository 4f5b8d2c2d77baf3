package auth

import (
	"regexp"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	// MinPasswordLength is the shortest accepted password, in characters.
	MinPasswordLength = 8
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword requires MinPasswordLength characters, an uppercase letter and
// a digit, within MaxPasswordBytes.
func ValidPassword(password string) bool {
	if len([]rune(password)) < MinPasswordLength || len(password) > MaxPasswordBytes {
		return false
	}
	var upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && digit
}
