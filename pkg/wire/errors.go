package wire

import (
	"errors"
	"fmt"
)

// Codec errors.
var (
	// ErrUnsupportedType is returned when a Go type has no textual form.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnknownType is returned for declared type names outside the
	// int/double/bool/string families.
	ErrUnknownType = errors.New("unknown type")

	// ErrInvalidValue is returned when text cannot be parsed as the
	// requested type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrAmbiguousPayload is returned when a payload cannot be split
	// unambiguously into its primary and associated values.
	ErrAmbiguousPayload = errors.New("ambiguous payload")
)

// UnsupportedTypeError names the Go type the codec rejected.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %s", e.Type)
}

// Is reports whether target is ErrUnsupportedType.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ConfigError is returned when a node name cannot be carried in a
// subscribe request because it contains the reserved separator or is empty.
type ConfigError struct {
	Node string
}

func (e *ConfigError) Error() string {
	if e.Node == "" {
		return "invalid node name: empty"
	}
	return fmt.Sprintf("invalid node name %q: contains the reserved separator", e.Node)
}
