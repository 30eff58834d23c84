package validation

import (
	"errors"
	"unicode/utf8"
)

// ValidateFullName validates the optional display name.
func ValidateFullName(name string) error {
	if utf8.RuneCountInString(name) > 255 {
		return errors.New("full name is too long (max 255 characters)")
	}
	return nil
}
