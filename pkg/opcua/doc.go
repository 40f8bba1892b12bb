// Package opcua is the production adapter.Adapter for OPC UA servers,
// built on github.com/gopcua/opcua.
//
// Node names are OPC UA node ids in their string form ("ns=2;s=Pump.Speed",
// "i=2258"). Values cross the adapter boundary as text: reads render the
// variant with the gateway's value codec and writes parse the text into
// the node's native type before building the variant.
//
// Each adapter subscription owns one OPC UA subscription with a single
// monitored item. The session is opened without message security and with
// anonymous authentication; securing the OPC UA leg is left to the network.
package opcua
