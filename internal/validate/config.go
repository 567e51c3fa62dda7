package validate

import (
	"fmt"
	"time"
)

// ValidatePortRange validates that a port number is within 1-65535.
// Port 0 is rejected: the deployed container's target port must be known.
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveTimeout validates that a timeout duration is positive (> 0).
func ValidatePositiveTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

// ValidateIntRange validates min <= value <= max for numeric settings such as
// replica counts and document size limits.
func ValidateIntRange(value, min, max int, name string) error {
	if err := ValidateField(value, fmt.Sprintf("min=%d,max=%d", min, max)); err != nil {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, value)
	}
	return nil
}
