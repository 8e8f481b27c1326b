package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("schema configuration error")

	// ErrValidationSetup matches every *ValidationSetupError.
	ErrValidationSetup = errors.New("validation setup error")

	// ErrNotObject is returned when a payload document is not a JSON object.
	ErrNotObject = errors.New("payload is not an object")
)

// ConfigurationError reports an inconsistent parameter declaration.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: parameter %q: %s", e.Key, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ValidationSetupError reports that a payload omits keys the schema declares.
// Callers must pass every declared key, using nil for absent values.
type ValidationSetupError struct {
	Missing []string
}

func (e *ValidationSetupError) Error() string {
	return fmt.Sprintf(MsgMissingValidation, strings.Join(e.Missing, ","))
}

func (e *ValidationSetupError) Is(target error) bool {
	return target == ErrValidationSetup
}
