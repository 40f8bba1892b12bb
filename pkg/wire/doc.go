// Package wire implements the textual value codec used between gateway
// clients and the gateway.
//
// Every value crosses the RPC boundary as text. Typed values are rendered
// with the strconv package and parsed back into the caller's type:
//
//	s, _ := wire.Encode(int32(42))   // "42"
//	v, _ := wire.Decode[int32](s)    // 42
//
// Subscriptions multiplex one primary value and N associated values into a
// single payload joined by Separator. The same separator joins the list of
// associated node names in a subscribe request:
//
//	names, _ := wire.JoinNames([]string{"B", "C"})
//	payload, _ := wire.EncodePayload("10", []string{"20", "30"})
//	value, assoc, _ := wire.DecodePayload[int](payload, []string{"B", "C"})
//	// value == 10, assoc == map[B:20 C:30]
package wire
