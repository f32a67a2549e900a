package validators

import (
	"errors"
	"unicode/utf8"
)

const MaxGameNameLength = 50

var ErrGameNameTooLong = errors.New("Name is too long (maximum is 50 characters)")

func GameNameValidator(n string) error {
	if utf8.RuneCountInString(n) > MaxGameNameLength {
		return ErrGameNameTooLong
	}

	return nil
}
