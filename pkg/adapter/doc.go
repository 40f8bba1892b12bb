// Package adapter defines the boundary between the gateway and the
// industrial data source it bridges.
//
// An Adapter reads and writes single node values, validates node names and
// delivers value changes through subscriptions. Values are exchanged as
// text together with the node's native DataType; the gateway never sees
// protocol-level types.
//
// The OPC UA implementation lives in package opcua. Memory is an in-process
// implementation used by tests and by the server's simulation mode.
package adapter
