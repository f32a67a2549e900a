package validators

import "errors"

const MinPasswordLength = 8

var (
	ErrPasswordTooShort = errors.New("Password is too short (minimum is 8 characters)")
	ErrPasswordTooLong  = errors.New("Password is too long (maximum is 255 characters)")
)

func PasswordValidator(p string) error {
	if len(p) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	// argon2 accepts anything, this only keeps request bodies sane
	if len(p) > 255 {
		return ErrPasswordTooLong
	}

	return nil
}
