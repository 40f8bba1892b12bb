package discovery

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service type constants for mDNS.
const (
	// ServiceTypeGateway is the service type announced by gateways.
	ServiceTypeGateway = "_gropc._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default gateway port.
	DefaultPort = 50051

	// DefaultInstance is the instance name used when none is configured.
	DefaultInstance = "gropc"
)

// TXT record keys.
const (
	TXTKeyAPIVersion = "api"   // Gateway API version, "major.minor"
	TXTKeyBuild      = "build" // Build string
	TXTKeyEndpoint   = "opc"   // OPC UA endpoint URL
	TXTKeyReadOnly   = "ro"    // "1" if the whitelist is empty
)

// Limits.
const (
	// MaxInstanceNameLen is the maximum DNS-SD instance name length.
	MaxInstanceNameLen = 63

	// MaxTXTRecordSize is the maximum total TXT record size.
	MaxTXTRecordSize = 400

	// BrowseTimeout is the default timeout for FindGateway.
	BrowseTimeout = 10 * time.Second
)

// Discovery errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrTXTRecordTooLarge   = errors.New("TXT record exceeds 400 bytes")
	ErrNotFound            = errors.New("service not found")
	ErrNotAdvertising      = errors.New("not advertising")
)

// GatewayInfo is what a gateway announces about itself.
type GatewayInfo struct {
	// Instance is the DNS-SD instance name.
	Instance string

	// Port is the gRPC listen port.
	Port uint16

	// APIVersion is the gateway API version.
	APIVersion string

	// Build is the gateway build string.
	Build string

	// Endpoint is the OPC UA endpoint. Optional.
	Endpoint string

	// ReadOnly is set when no node may be written.
	ReadOnly bool
}

// Validate checks the info before it is announced.
func (i *GatewayInfo) Validate() error {
	if err := ValidateInstanceName(i.Instance); err != nil {
		return err
	}
	if i.APIVersion == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyAPIVersion)
	}
	if size := TXTRecordSize(EncodeGatewayTXT(i)); size > MaxTXTRecordSize {
		return fmt.Errorf("%w: %d bytes", ErrTXTRecordTooLarge, size)
	}
	return nil
}

// GatewayService is a gateway found by browsing.
type GatewayService struct {
	InstanceName string
	Host         string
	Port         uint16
	Addresses    []string

	APIVersion string
	Build      string
	Endpoint   string
	ReadOnly   bool
}

// Target returns a host:port suitable for dialing. The first address is
// preferred over the host name.
func (s *GatewayService) Target() string {
	host := s.Host
	if len(s.Addresses) > 0 {
		host = s.Addresses[0]
	}
	return net.JoinHostPort(host, strconv.Itoa(int(s.Port)))
}
