package wire

import (
	"fmt"
	"strings"
)

// Separator joins the values of a subscription payload and the associated
// node names of a subscribe request. It is built from ASCII unit
// separators so that it cannot occur in ordinary text.
const Separator = "\x1f|\x1f"

// InvalidSubscriptionID is the subscription id the gateway answers with
// when a subscribe request names an unknown node. The payload of that
// message carries the offending node name.
const InvalidSubscriptionID = "-1"

// JoinNames encodes an ordered list of associated node names.
func JoinNames(names []string) (string, error) {
	for _, name := range names {
		if name == "" || strings.Contains(name, Separator) {
			return "", &ConfigError{Node: name}
		}
	}
	return strings.Join(names, Separator), nil
}

// SplitNames decodes a list produced by JoinNames. An empty string is an
// empty list.
func SplitNames(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, Separator)
}

// EncodePayload joins a primary value with its associated values.
func EncodePayload(primary string, associated []string) (string, error) {
	if len(associated) == 0 {
		return primary, nil
	}
	if strings.Contains(primary, Separator) {
		return "", fmt.Errorf("%w: primary value contains the separator", ErrAmbiguousPayload)
	}
	for i, v := range associated {
		if strings.Contains(v, Separator) {
			return "", fmt.Errorf("%w: associated value %d contains the separator", ErrAmbiguousPayload, i)
		}
	}
	var b strings.Builder
	b.WriteString(primary)
	for _, v := range associated {
		b.WriteString(Separator)
		b.WriteString(v)
	}
	return b.String(), nil
}

// SplitPayload splits a payload carrying n associated values.
func SplitPayload(payload string, n int) (string, []string, error) {
	if n == 0 {
		return payload, nil, nil
	}
	parts := strings.Split(payload, Separator)
	if len(parts) != n+1 {
		return "", nil, fmt.Errorf("%w: expected %d values, got %d", ErrAmbiguousPayload, n+1, len(parts))
	}
	return parts[0], parts[1:], nil
}

// DecodePayload decodes a payload into the primary value and a map from
// associated node name to its textual value. Values are matched to names
// by position.
func DecodePayload[T any](payload string, names []string) (T, map[string]string, error) {
	var zero T
	primary, values, err := SplitPayload(payload, len(names))
	if err != nil {
		return zero, nil, err
	}
	v, err := Decode[T](primary)
	if err != nil {
		return zero, nil, err
	}
	assoc := make(map[string]string, len(names))
	for i, name := range names {
		assoc[name] = values[i]
	}
	return v, assoc, nil
}
