package adapter

import "fmt"

// DataType is the native type of a node value.
type DataType uint8

// Native data types.
const (
	DataTypeUnknown DataType = iota
	DataTypeBoolean
	DataTypeSByte
	DataTypeByte
	DataTypeInt16
	DataTypeUInt16
	DataTypeInt32
	DataTypeUInt32
	DataTypeInt64
	DataTypeUInt64
	DataTypeFloat
	DataTypeDouble
	DataTypeString
	DataTypeDateTime
)

var dataTypeNames = map[DataType]string{
	DataTypeUnknown:  "Unknown",
	DataTypeBoolean:  "Boolean",
	DataTypeSByte:    "SByte",
	DataTypeByte:     "Byte",
	DataTypeInt16:    "Int16",
	DataTypeUInt16:   "UInt16",
	DataTypeInt32:    "Int32",
	DataTypeUInt32:   "UInt32",
	DataTypeInt64:    "Int64",
	DataTypeUInt64:   "UInt64",
	DataTypeFloat:    "Float",
	DataTypeDouble:   "Double",
	DataTypeString:   "String",
	DataTypeDateTime: "DateTime",
}

// String returns the type name.
func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", uint8(t))
}

// ParseDataType maps a type name back to its DataType.
func ParseDataType(name string) (DataType, error) {
	for t, n := range dataTypeNames {
		if n == name {
			return t, nil
		}
	}
	return DataTypeUnknown, fmt.Errorf("unknown data type %q", name)
}

// IsInteger reports whether the type belongs to the integer family that
// gateway clients write with the "int" type. Byte-sized integers are not
// part of it.
func (t DataType) IsInteger() bool {
	switch t {
	case DataTypeInt16, DataTypeUInt16, DataTypeInt32, DataTypeUInt32, DataTypeInt64, DataTypeUInt64:
		return true
	}
	return false
}

// IsFloat reports whether the type is Float or Double.
func (t DataType) IsFloat() bool {
	return t == DataTypeFloat || t == DataTypeDouble
}
