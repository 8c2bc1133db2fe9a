package errors

import (
	"fmt"
)

// configurationError errors are raised when the configuration file cannot be
// parsed, decoded, or resolved against the registries e.g. the operator has
// made a mistake in config.json.
type configurationError struct {
	message string
}

// NewConfigurationError returns a new configuration error formatted like fmt.Errorf.
func NewConfigurationError(message string, arguments ...interface{}) error {
	return &configurationError{message: fmt.Sprintf(message, arguments...)}
}

// IsConfigurationError returns whether an error is a configuration error.
func IsConfigurationError(err error) bool {
	if _, ok := err.(*configurationError); !ok {
		return false
	}
	return true
}

// Error returns the configuration error string.
func (e *configurationError) Error() string {
	return e.message
}

// validationError errors are raised when a decoded configuration fails
// semantic validation e.g. duplicate run names or a missing template file.
type validationError struct {
	message string
}

// NewValidationError returns a new validation error formatted like fmt.Errorf.
func NewValidationError(message string, arguments ...interface{}) error {
	return &validationError{message: fmt.Sprintf(message, arguments...)}
}

// IsValidationError returns whether an error is a validation error.
func IsValidationError(err error) bool {
	if _, ok := err.(*validationError); !ok {
		return false
	}
	return true
}

// Error returns the validation error string.
func (e *validationError) Error() string {
	return e.message
}

// registryError errors are raised by namespace claims and resource
// registration or lookup.
type registryError struct {
	message string
}

// NewRegistryError returns a new registry error formatted like fmt.Errorf.
func NewRegistryError(message string, arguments ...interface{}) error {
	return &registryError{message: fmt.Sprintf(message, arguments...)}
}

// IsRegistryError returns whether an error is a registry error.
func IsRegistryError(err error) bool {
	if _, ok := err.(*registryError); !ok {
		return false
	}
	return true
}

// Error returns the registry error string.
func (e *registryError) Error() string {
	return e.message
}

// driverError errors are raised by a site generator driver's config decode,
// create, or mid-iteration read.
type driverError struct {
	message string
}

// NewDriverError returns a new driver error formatted like fmt.Errorf.
func NewDriverError(message string, arguments ...interface{}) error {
	return &driverError{message: fmt.Sprintf(message, arguments...)}
}

// IsDriverError returns whether an error is a driver error.
func IsDriverError(err error) bool {
	if _, ok := err.(*driverError); !ok {
		return false
	}
	return true
}

// Error returns the driver error string.
func (e *driverError) Error() string {
	return e.message
}

// templateError errors are raised by the template engine at register or
// render time.
type templateError struct {
	message string
}

// NewTemplateError returns a new template error formatted like fmt.Errorf.
func NewTemplateError(message string, arguments ...interface{}) error {
	return &templateError{message: fmt.Sprintf(message, arguments...)}
}

// IsTemplateError returns whether an error is a template error.
func IsTemplateError(err error) bool {
	if _, ok := err.(*templateError); !ok {
		return false
	}
	return true
}

// Error returns the template error string.
func (e *templateError) Error() string {
	return e.message
}

// interpolationError errors are raised when a TemplateString references a
// key absent from its context, or when interpolation re-enters a key
// already being resolved.
type interpolationError struct {
	message string
}

// NewInterpolationError returns a new interpolation error formatted like fmt.Errorf.
func NewInterpolationError(message string, arguments ...interface{}) error {
	return &interpolationError{message: fmt.Sprintf(message, arguments...)}
}

// IsInterpolationError returns whether an error is an interpolation error.
func IsInterpolationError(err error) bool {
	if _, ok := err.(*interpolationError); !ok {
		return false
	}
	return true
}

// Error returns the interpolation error string.
func (e *interpolationError) Error() string {
	return e.message
}

// processorError errors collapse a pipeline worker, e.g. when the output
// channel's receiver has gone away.
type processorError struct {
	message string
}

// NewProcessorError returns a new processor error formatted like fmt.Errorf.
func NewProcessorError(message string, arguments ...interface{}) error {
	return &processorError{message: fmt.Sprintf(message, arguments...)}
}

// IsProcessorError returns whether an error is a processor error.
func IsProcessorError(err error) bool {
	if _, ok := err.(*processorError); !ok {
		return false
	}
	return true
}

// Error returns the processor error string.
func (e *processorError) Error() string {
	return e.message
}
