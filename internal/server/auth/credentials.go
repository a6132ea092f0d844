package auth

import (
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

const (
	UserNameMinLen = 4
	UserNameMaxLen = 25
	PasswordMinLen = 8
	PasswordMaxLen = 25
)

// ValidateCredentials checks signup input. Lengths are counted in runes. A
// password needs an upper-case letter, a lower-case letter and at least one
// character that is a digit or not a letter. The returned error is a
// *common.ValidationError listing every problem per field, or nil.
func ValidateCredentials(username, password string) error {
	v := common.NewValidationError()

	switch n := utf8.RuneCountInString(username); {
	case n < UserNameMinLen:
		v.Add("username", "too short")
	case n > UserNameMaxLen:
		v.Add("username", "too long")
	}

	switch n := utf8.RuneCountInString(password); {
	case n < PasswordMinLen:
		v.Add("password", "too short")
	case n > PasswordMaxLen:
		v.Add("password", "too long")
	}

	if !strongPassword(password) {
		v.Add("password", "too weak")
	}

	return v.OrNil()
}

func strongPassword(password string) bool {
	var upper, lower, other bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r), !unicode.IsLetter(r):
			other = true
		}
	}
	return upper && lower && other
}
