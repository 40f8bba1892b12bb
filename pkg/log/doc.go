// Package log captures gateway protocol traffic.
//
// Protocol events are separate from the operational slog output: they form
// a machine-readable trace of every read, write, subscription handshake and
// notification, recorded where it happens.
//
//   - LayerRPC: calls as they arrive from and return to clients
//   - LayerSubscription: handshakes, notifications, teardown
//   - LayerAdapter: failures talking to the OPC UA server
//
// A gateway is wired with a Logger through its configuration:
//
//	file, err := log.NewFileLogger("/var/log/gropc/gateway.glog")
//	...
//	cfg.ProtocolLogger = log.NewMultiLogger(file, log.NewSlogAdapter(logger))
//
// Capture files hold a plain sequence of CBOR items, one Event each, and
// are read back with Reader or the gropc-log command.
package log
