package adapter

import (
	"context"
	"errors"
)

// Adapter errors.
var (
	// ErrDisconnected is returned when the data source cannot be reached.
	ErrDisconnected = errors.New("adapter disconnected")

	// ErrUnknownNode is returned for node names the data source does not know.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownHandle is returned when unsubscribing a handle that is not active.
	ErrUnknownHandle = errors.New("unknown subscription handle")

	// ErrWriteRejected is returned when the data source refuses a write.
	ErrWriteRejected = errors.New("write rejected")
)

// DataValue is a node value in textual form with its native type.
type DataValue struct {
	Value string
	Type  DataType
}

// Handle identifies an adapter-level subscription.
type Handle uint32

// ChangeFunc receives the textual value of a subscribed node on every
// change. Calls for one subscription are sequential and in change order.
// A ChangeFunc may block to apply backpressure; the adapter then holds back
// later changes of that subscription instead of dropping them.
type ChangeFunc func(value string)

// Adapter is the data source behind the gateway.
type Adapter interface {
	// Connect establishes the session with the data source.
	Connect(ctx context.Context) error

	// Close ends the session and releases all subscriptions.
	Close(ctx context.Context) error

	// Read returns the current value of node.
	Read(ctx context.Context, node string) (DataValue, error)

	// Write sets node to value, converted to the node's native type.
	Write(ctx context.Context, node, value string, typ DataType) error

	// Subscribe delivers value changes of node to onChange until the
	// returned handle is unsubscribed.
	Subscribe(ctx context.Context, node string, onChange ChangeFunc) (Handle, error)

	// Unsubscribe stops a subscription.
	Unsubscribe(ctx context.Context, h Handle) error

	// IsValidNode reports whether node names a readable node. It fails
	// with ErrDisconnected when the data source cannot be asked.
	IsValidNode(ctx context.Context, node string) (bool, error)
}
