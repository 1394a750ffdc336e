// Package yamlutil wraps goccy/go-yaml for config files: input size limits,
// strict decoding, and error messages that point at the offending line.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	return wrap(yaml.Unmarshal(data, v))
}

// UnmarshalStrict decodes data into v and rejects unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	return wrap(yaml.UnmarshalWithOptions(data, v, yaml.Strict()))
}

// Marshal encodes v with two-space indentation and block-style sequences.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// wrap keeps the original error for errors.Is/As and replaces its message
// with goccy's formatted one, which includes the line and column.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &decodeError{msg: yaml.FormatError(err, false, true), err: err}
}

type decodeError struct {
	msg string
	err error
}

func (e *decodeError) Error() string { return "yamlutil: " + e.msg }
func (e *decodeError) Unwrap() error { return e.err }
