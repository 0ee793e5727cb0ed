package analysis

import "fmt"

// ConfigurationError is returned when analysis options are invalid.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// DegradedCapabilityError reports an optional capability that could not be initialized.
// The analyzer keeps running without it.
type DegradedCapabilityError struct {
	Capability string
	Cause      error
}

func (e *DegradedCapabilityError) Error() string {
	return fmt.Sprintf("capability %s unavailable: %v", e.Capability, e.Cause)
}

func (e *DegradedCapabilityError) Unwrap() error {
	return e.Cause
}
