// Package discovery implements mDNS/DNS-SD advertisement of gROPC gateways.
//
// A gateway announces itself as an instance of _gropc._tcp in the local
// domain. The instance name defaults to "gropc" and can be set in the
// configuration. TXT records carry:
//
//   - api: the gateway API version (see package version)
//   - build: the gateway build string
//   - opc: the OPC UA endpoint the gateway bridges to (optional)
//   - ro: "1" when no node is writable (optional)
//
// Clients use MDNSBrowser.BrowseGateways to find gateways on the local
// network and then dial the advertised host and port. Advertisement is
// purely informational: it carries no credentials and is not required for
// a client to connect.
package discovery
