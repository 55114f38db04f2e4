package tracker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// UsageError marks malformed input. No storage access happens after one.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// IsUsage reports whether err is, or wraps, a *UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// MaxID is the largest task id accepted from user input.
const MaxID = 255

// ParseID decodes a task id argument in the range 0..MaxID.
func ParseID(s string) (int64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, &UsageError{Err: fmt.Errorf("invalid id %q: want an integer between 0 and %d", s, MaxID)}
	}
	return int64(n), nil
}

// ParseFlag decodes a status argument that must be exactly one character.
func ParseFlag(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, &UsageError{Err: fmt.Errorf("invalid status %q: want a single character", s)}
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
