package opcua

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gopcua/opcua/ua"

	"github.com/gropc-project/gropc-go/pkg/adapter"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

var typeIDs = map[ua.TypeID]adapter.DataType{
	ua.TypeIDBoolean:  adapter.DataTypeBoolean,
	ua.TypeIDSByte:    adapter.DataTypeSByte,
	ua.TypeIDByte:     adapter.DataTypeByte,
	ua.TypeIDInt16:    adapter.DataTypeInt16,
	ua.TypeIDUint16:   adapter.DataTypeUInt16,
	ua.TypeIDInt32:    adapter.DataTypeInt32,
	ua.TypeIDUint32:   adapter.DataTypeUInt32,
	ua.TypeIDInt64:    adapter.DataTypeInt64,
	ua.TypeIDUint64:   adapter.DataTypeUInt64,
	ua.TypeIDFloat:    adapter.DataTypeFloat,
	ua.TypeIDDouble:   adapter.DataTypeDouble,
	ua.TypeIDString:   adapter.DataTypeString,
	ua.TypeIDDateTime: adapter.DataTypeDateTime,
}

// dataTypeOf maps a variant type to the adapter's data type.
func dataTypeOf(id ua.TypeID) adapter.DataType {
	if t, ok := typeIDs[id]; ok {
		return t
	}
	return adapter.DataTypeUnknown
}

// variantText renders a variant value as text.
func variantText(v *ua.Variant) string {
	if v == nil {
		return ""
	}
	switch x := v.Value().(type) {
	case nil:
		return ""
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case []byte:
		return string(x)
	case *ua.LocalizedText:
		if x == nil {
			return ""
		}
		return x.Text
	default:
		if s, err := wire.Encode(x); err == nil {
			return s
		}
		return fmt.Sprint(x)
	}
}

// toVariant parses text as the native type typ.
func toVariant(text string, typ adapter.DataType) (*ua.Variant, error) {
	var v any
	var err error
	switch typ {
	case adapter.DataTypeBoolean:
		v, err = strconv.ParseBool(text)
	case adapter.DataTypeSByte:
		v, err = parseInt(text, 8, func(n int64) any { return int8(n) })
	case adapter.DataTypeInt16:
		v, err = parseInt(text, 16, func(n int64) any { return int16(n) })
	case adapter.DataTypeInt32:
		v, err = parseInt(text, 32, func(n int64) any { return int32(n) })
	case adapter.DataTypeInt64:
		v, err = parseInt(text, 64, func(n int64) any { return n })
	case adapter.DataTypeByte:
		v, err = parseUint(text, 8, func(n uint64) any { return uint8(n) })
	case adapter.DataTypeUInt16:
		v, err = parseUint(text, 16, func(n uint64) any { return uint16(n) })
	case adapter.DataTypeUInt32:
		v, err = parseUint(text, 32, func(n uint64) any { return uint32(n) })
	case adapter.DataTypeUInt64:
		v, err = parseUint(text, 64, func(n uint64) any { return n })
	case adapter.DataTypeFloat:
		var f float64
		f, err = strconv.ParseFloat(text, 32)
		v = float32(f)
	case adapter.DataTypeDouble:
		v, err = strconv.ParseFloat(text, 64)
	case adapter.DataTypeString:
		v = text
	case adapter.DataTypeDateTime:
		v, err = time.Parse(time.RFC3339Nano, text)
	default:
		return nil, fmt.Errorf("%w: cannot write %s", adapter.ErrWriteRejected, typ)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid %s", adapter.ErrWriteRejected, text, typ)
	}
	return ua.NewVariant(v)
}

func parseInt(text string, bits int, conv func(int64) any) (any, error) {
	n, err := strconv.ParseInt(text, 10, bits)
	if err != nil {
		return nil, err
	}
	return conv(n), nil
}

func parseUint(text string, bits int, conv func(uint64) any) (any, error) {
	n, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		return nil, err
	}
	return conv(n), nil
}
