// Package connection implements the client side of a gateway subscription
// as a pure state machine.
//
// A Machine is advanced with Step, which takes one Input and returns the
// next Machine together with the Outputs the caller has to carry out:
// opening a stream, waiting before a retry, notifying the gateway, raising
// events. The machine itself performs no I/O and never sleeps, so every
// transition can be tested without a network or a clock.
//
// # States
//
//	Idle --Start--> Connecting --Handshake--> Subscribed
//	                   ^  |                      |
//	        RetryElapsed  | StreamLost           | StreamLost
//	                   |  v                      v
//	               Reconnecting <----------------+
//
// StreamLost moves to Reconnecting while the ReconnectionPolicy allows
// another attempt and to Failed once it does not. Unsubscribe ends the
// machine in Unsubscribed from any live state. Failed and Unsubscribed
// are terminal.
//
// # Reconnection
//
// The attempt counter starts at zero and is reset by every successful
// handshake. With MaxAttempts set to N the subscription is reopened at
// most N times in a row before it fails with ErrDisconnected. The default
// policy waits 2.2 seconds between attempts and never gives up.
package connection
