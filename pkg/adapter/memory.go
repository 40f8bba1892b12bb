package adapter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Memory is an in-process Adapter holding node values in a map.
//
// Like an OPC UA monitored item, a new subscription first receives the
// node's current value. Change callbacks run synchronously on the goroutine
// that changed the value.
type Memory struct {
	mu         sync.RWMutex
	connected  bool
	nodes      map[string]*memoryNode
	subs       map[Handle]*memorySub
	nextHandle Handle
	reads      map[string]int
}

type memoryNode struct {
	value string
	typ   DataType
}

type memorySub struct {
	node     string
	onChange ChangeFunc
}

// Compile-time interface satisfaction check.
var _ Adapter = (*Memory)(nil)

// NewMemory creates an empty, disconnected memory adapter.
func NewMemory() *Memory {
	return &Memory{
		nodes: make(map[string]*memoryNode),
		subs:  make(map[Handle]*memorySub),
		reads: make(map[string]int),
	}
}

// Define creates or replaces a node without notifying subscribers.
func (m *Memory) Define(node string, typ DataType, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes[node] = &memoryNode{value: value, typ: typ}
}

// Set changes a node value and notifies its subscribers.
//
// Subscribers are called on the caller's goroutine in handle order, so Set
// returns only after every subscriber accepted the value.
func (m *Memory) Set(node, value string) error {
	m.mu.Lock()
	n, ok := m.nodes[node]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownNode, node)
	}
	n.value = value
	callbacks := m.subscribersLocked(node)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(value)
	}
	return nil
}

// SetConnected simulates losing or regaining the data source.
func (m *Memory) SetConnected(connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = connected
}

// Reads returns how many reads were served for node.
func (m *Memory) Reads(node string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads[node]
}

// SubscriptionCount returns the number of active subscriptions.
func (m *Memory) SubscriptionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

// Nodes returns the defined node names in sorted order.
func (m *Memory) Nodes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.nodes))
	for n := range m.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Connect implements Adapter.
func (m *Memory) Connect(ctx context.Context) error {
	m.SetConnected(true)
	return nil
}

// Close implements Adapter.
func (m *Memory) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	m.subs = make(map[Handle]*memorySub)
	return nil
}

// Read implements Adapter.
func (m *Memory) Read(ctx context.Context, node string) (DataValue, error) {
	if err := ctx.Err(); err != nil {
		return DataValue{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return DataValue{}, ErrDisconnected
	}
	n, ok := m.nodes[node]
	if !ok {
		return DataValue{}, fmt.Errorf("%w: %s", ErrUnknownNode, node)
	}
	m.reads[node]++
	return DataValue{Value: n.value, Type: n.typ}, nil
}

// Write implements Adapter. The value must parse as typ and typ must match
// the node's type.
func (m *Memory) Write(ctx context.Context, node, value string, typ DataType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return ErrDisconnected
	}
	n, ok := m.nodes[node]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownNode, node)
	}
	if n.typ != typ {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s is %s, not %s", ErrWriteRejected, node, n.typ, typ)
	}
	normalized, err := normalize(value, typ)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrWriteRejected, err)
	}
	n.value = normalized
	callbacks := m.subscribersLocked(node)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(normalized)
	}
	return nil
}

// Subscribe implements Adapter.
func (m *Memory) Subscribe(ctx context.Context, node string, onChange ChangeFunc) (Handle, error) {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return 0, ErrDisconnected
	}
	n, ok := m.nodes[node]
	if !ok {
		m.mu.Unlock()
		return 0, fmt.Errorf("%w: %s", ErrUnknownNode, node)
	}
	m.nextHandle++
	h := m.nextHandle
	m.subs[h] = &memorySub{node: node, onChange: onChange}
	initial := n.value
	m.mu.Unlock()

	onChange(initial)
	return h, nil
}

// Unsubscribe implements Adapter.
func (m *Memory) Unsubscribe(ctx context.Context, h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[h]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	delete(m.subs, h)
	return nil
}

// IsValidNode implements Adapter.
func (m *Memory) IsValidNode(ctx context.Context, node string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.connected {
		return false, ErrDisconnected
	}
	_, ok := m.nodes[node]
	return ok, nil
}

// subscribersLocked returns the callbacks for node in handle order.
func (m *Memory) subscribersLocked(node string) []ChangeFunc {
	handles := make([]Handle, 0, len(m.subs))
	for h, s := range m.subs {
		if s.node == node {
			handles = append(handles, h)
		}
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	out := make([]ChangeFunc, len(handles))
	for i, h := range handles {
		out[i] = m.subs[h].onChange
	}
	return out
}

func normalize(value string, typ DataType) (string, error) {
	switch typ {
	case DataTypeBoolean:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case DataTypeSByte, DataTypeInt16, DataTypeInt32, DataTypeInt64:
		n, err := strconv.ParseInt(value, 10, bitSize(typ))
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case DataTypeByte, DataTypeUInt16, DataTypeUInt32, DataTypeUInt64:
		n, err := strconv.ParseUint(value, 10, bitSize(typ))
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(n, 10), nil
	case DataTypeFloat, DataTypeDouble:
		f, err := strconv.ParseFloat(value, bitSize(typ))
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'g', -1, bitSize(typ)), nil
	case DataTypeString:
		return value, nil
	default:
		return "", fmt.Errorf("cannot write %s", typ)
	}
}

func bitSize(typ DataType) int {
	switch typ {
	case DataTypeSByte, DataTypeByte:
		return 8
	case DataTypeInt16, DataTypeUInt16:
		return 16
	case DataTypeInt32, DataTypeUInt32, DataTypeFloat:
		return 32
	default:
		return 64
	}
}
