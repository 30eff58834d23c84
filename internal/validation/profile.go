package validation

import (
	"fmt"
	"unicode/utf8"
)

// IntRange checks an optional integer field. Nil passes.
func IntRange(v *int, min, max int) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return fmt.Errorf("must be between %d and %d", min, max)
	}
	return nil
}

// Positive checks an optional measurement. Nil passes.
func Positive(v *float64) error {
	if v == nil {
		return nil
	}
	if *v <= 0 {
		return fmt.Errorf("must be greater than 0")
	}
	return nil
}

// TextLength checks the rune length of s against min and max.
func TextLength(s string, min, max int) error {
	n := utf8.RuneCountInString(s)
	if n < min {
		return fmt.Errorf("must be at least %d characters", min)
	}
	if n > max {
		return fmt.Errorf("must be at most %d characters", max)
	}
	return nil
}
