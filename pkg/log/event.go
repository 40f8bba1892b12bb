package log

import "time"

// Event is one captured protocol event. Fields use small integer CBOR keys;
// the key numbers are part of the capture format and must not change.
type Event struct {
	Timestamp time.Time `cbor:"1,keyasint"`

	// ClientID is the client id metadata of the call, or the peer address
	// when the client sent none.
	ClientID string `cbor:"2,keyasint,omitempty"`

	// Direction is relative to the gateway.
	Direction Direction `cbor:"3,keyasint"`
	Layer     Layer     `cbor:"4,keyasint"`
	Category  Category  `cbor:"5,keyasint"`

	RemoteAddr     string `cbor:"6,keyasint,omitempty"`
	SubscriptionID string `cbor:"7,keyasint,omitempty"`
	Node           string `cbor:"8,keyasint,omitempty"`

	// Exactly one of these matches Category.
	Message     *MessageEvent     `cbor:"10,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"`
}

// Direction of a message as seen by the gateway.
type Direction uint8

const (
	DirectionIn Direction = iota
	DirectionOut
)

// Layer is the part of the gateway that produced an event.
type Layer uint8

const (
	LayerRPC Layer = iota
	LayerSubscription
	LayerAdapter
)

// Category says which payload an event carries.
type Category uint8

const (
	CategoryMessage Category = iota
	CategoryState
	CategoryError
)

// Operation is the gateway call a message belongs to.
type Operation uint8

const (
	OpRead Operation = iota + 1
	OpWrite
	OpSubscribe
	OpUnsubscribe
)

// MessageType separates requests, responses and subscription notifications.
type MessageType uint8

const (
	MessageTypeRequest MessageType = iota
	MessageTypeResponse
	MessageTypeNotification
)

// StateEntity is the thing whose state changed.
type StateEntity uint8

const (
	StateEntitySubscription StateEntity = iota
	StateEntityAdapter
	StateEntityService
)

var (
	directionNames   = []string{"IN", "OUT"}
	layerNames       = []string{"RPC", "SUBSCRIPTION", "ADAPTER"}
	categoryNames    = []string{"MESSAGE", "STATE", "ERROR"}
	operationNames   = []string{"", "READ", "WRITE", "SUBSCRIBE", "UNSUBSCRIBE"}
	messageTypeNames = []string{"REQUEST", "RESPONSE", "NOTIFICATION"}
	entityNames      = []string{"SUBSCRIPTION", "ADAPTER", "SERVICE"}
)

// name looks i up in names, mapping gaps and out of range values to UNKNOWN.
func name(names []string, i uint8) string {
	if int(i) < len(names) && names[i] != "" {
		return names[i]
	}
	return "UNKNOWN"
}

func (d Direction) String() string   { return name(directionNames, uint8(d)) }
func (l Layer) String() string       { return name(layerNames, uint8(l)) }
func (c Category) String() string    { return name(categoryNames, uint8(c)) }
func (o Operation) String() string   { return name(operationNames, uint8(o)) }
func (m MessageType) String() string { return name(messageTypeNames, uint8(m)) }
func (s StateEntity) String() string { return name(entityNames, uint8(s)) }

// MessageEvent is a request, response or notification.
type MessageEvent struct {
	Type      MessageType `cbor:"1,keyasint"`
	Operation Operation   `cbor:"2,keyasint"`

	// Value holds the read or written value text, or a notification payload.
	Value string `cbor:"3,keyasint,omitempty"`

	// DeclaredType is the type name sent with a write.
	DeclaredType string `cbor:"4,keyasint,omitempty"`

	// Status is the write status or gRPC code of a response.
	Status string `cbor:"5,keyasint,omitempty"`

	// ProcessingTime is set on responses.
	ProcessingTime *time.Duration `cbor:"6,keyasint,omitempty"`
}

// StateChangeEvent records a lifecycle transition.
type StateChangeEvent struct {
	Entity   StateEntity `cbor:"1,keyasint"`
	OldState string      `cbor:"2,keyasint,omitempty"`
	NewState string      `cbor:"3,keyasint"`
	Reason   string      `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData records a failure.
type ErrorEventData struct {
	Layer   Layer  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`

	// Context names the step that failed, e.g. "read associated values".
	Context string `cbor:"3,keyasint,omitempty"`
}
