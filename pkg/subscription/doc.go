// Package subscription implements the gateway side of value subscriptions.
//
// A subscribe request opens one adapter subscription on the primary node
// and binds it to the client's outbound stream. Every change of the primary
// node produces exactly one message on that stream. The message carries the
// primary value followed by fresh reads of the associated nodes, joined
// with wire.Separator.
//
// # Lifecycle
//
// Subscribe validates every node name, registers the subscription under a
// new UUID, opens the adapter subscription and sends the handshake message
// (subscription id, empty payload). Serve then delivers notifications until
// the subscription is torn down by:
//
//   - Unsubscribe from the client that created it
//   - a failed send or a cancelled stream (client gone)
//   - Registry.Close on server shutdown
//
// Teardown releases the adapter handle, ends Serve and removes the entry, so
// the stream and the handle always close together.
//
// # Ordering
//
// Adapter callbacks only enqueue the primary value into a per-subscription
// FIFO. Serve is the single writer of the stream, so notifications leave in
// the order the adapter reported them and the handshake is always first.
// A full FIFO blocks the adapter callback; changes are never dropped for
// lack of queue space.
package subscription
