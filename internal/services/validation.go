package services

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError enumerates every field that violated a constraint. It is
// recoverable: the user corrects the listed fields and resubmits.
type ValidationError struct {
	Fields map[string]string
}

func (err *ValidationError) Error() string {
	names := make([]string, 0, len(err.Fields))
	for name := range err.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func newValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
