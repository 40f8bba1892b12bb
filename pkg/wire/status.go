package wire

// WriteStatus is the outcome of a write as carried in the write response.
type WriteStatus string

// Write statuses.
const (
	StatusOK           WriteStatus = "OK"
	StatusUnauthorized WriteStatus = "UNAUTHORIZED"
	StatusWrongType    WriteStatus = "WRONG_TYPE"
	StatusUnknownType  WriteStatus = "UNKNOWN_TYPE"
)

// String returns the status text.
func (s WriteStatus) String() string {
	return string(s)
}

// IsSuccess reports whether the write was applied.
func (s WriteStatus) IsSuccess() bool {
	return s == StatusOK
}
