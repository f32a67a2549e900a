// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"regexp"
)

const MaxEmailLength = 50

var (
	ErrEmailEmpty   = errors.New("Email can't be blank")
	ErrEmailTooLong = errors.New("Email is too long (maximum is 50 characters)")
	ErrEmailInvalid = errors.New("Email format not recognized")
)

var emailRegex = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-]+(?:\.[a-z\d\-]+)*\.[a-z]+$`)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if len(e) > MaxEmailLength {
		return ErrEmailTooLong
	}

	if !emailRegex.MatchString(e) {
		return ErrEmailInvalid
	}

	return nil
}
