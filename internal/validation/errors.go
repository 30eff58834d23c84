package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Errors collects per-field validation failures. A nil or empty Errors
// means the input is valid.
type Errors map[string]string

func (e Errors) Add(field string, err error) {
	if err != nil {
		e[field] = err.Error()
	}
}

// Err returns e as an error, or nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(parts, "; ")
}
