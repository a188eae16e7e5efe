package registry

import (
	"errors"
	"fmt"
)

const (
	DetailInvalidJSON          = "Invalid JSON"
	DetailMissingFields        = "Missing required fields"
	DetailMachineNameNotString = "machine_name must be a string"
	DetailBodyTooLarge         = "Request body too large"
)

var (
	ErrParse        = errors.New("malformed status body")
	ErrBodyTooLarge = errors.New("status body too large")
)

type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid status field %q: %s", e.Field, e.Detail)
}
