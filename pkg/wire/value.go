package wire

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Value lists the Go types the codec understands.
type Value interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~bool | ~string
}

// Kind is a declared value family as sent in write requests.
type Kind uint8

// Value kinds.
const (
	KindInt Kind = iota + 1
	KindDouble
	KindBool
	KindString
)

// String returns the declared type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("KIND_%d", k)
	}
}

// ParseKind maps a declared type name to its Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "int":
		return KindInt, nil
	case "double":
		return KindDouble, nil
	case "bool":
		return KindBool, nil
	case "string":
		return KindString, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// KindOf returns the family of a Go value.
func KindOf(v any) (Kind, error) {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt, nil
	case float32, float64:
		return KindDouble, nil
	case bool:
		return KindBool, nil
	case string:
		return KindString, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return 0, &UnsupportedTypeError{Type: "nil"}
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt, nil
	case reflect.Float32, reflect.Float64:
		return KindDouble, nil
	case reflect.Bool:
		return KindBool, nil
	case reflect.String:
		return KindString, nil
	}
	return 0, &UnsupportedTypeError{Type: rv.Type().String()}
}

// Encode renders v as text.
func Encode(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	}

	// Named types over a supported kind.
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "", &UnsupportedTypeError{Type: "nil"}
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	}
	return "", &UnsupportedTypeError{Type: rv.Type().String()}
}

// Decode parses s into T.
func Decode[T any](s string) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if err := decodeInto(rv, s); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Supports reports whether T can be decoded.
func Supports[T any]() error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	}
	return &UnsupportedTypeError{Type: t.String()}
}

func decodeInto(rv reflect.Value, s string) error {
	t := rv.Type()
	switch t.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return invalid(s, t)
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, t.Bits())
		if err != nil {
			return invalid(s, t)
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, t.Bits())
		if err != nil {
			return invalid(s, t)
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), t.Bits())
		if err != nil {
			return invalid(s, t)
		}
		rv.SetFloat(f)
	default:
		return &UnsupportedTypeError{Type: t.String()}
	}
	return nil
}

func invalid(s string, t reflect.Type) error {
	return fmt.Errorf("%w: %q is not a %s", ErrInvalidValue, s, t)
}

// DecodeAs parses s according to a declared kind. Integers decode to
// int64, or to uint64 above math.MaxInt64; doubles decode to float64.
func DecodeAs(s string, kind Kind) (any, error) {
	switch kind {
	case KindInt:
		if n, err := Decode[int64](s); err == nil {
			return n, nil
		}
		return Decode[uint64](s)
	case KindDouble:
		return Decode[float64](s)
	case KindBool:
		return Decode[bool](s)
	case KindString:
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, kind)
	}
}
