package discovery

import (
	"context"
	"time"
)

// Advertiser announces a gateway on the local network.
type Advertiser interface {
	// Advertise starts announcing the gateway. A running announcement is
	// replaced.
	Advertise(ctx context.Context, info *GatewayInfo) error

	// Update replaces the TXT records of the running announcement.
	Update(info *GatewayInfo) error

	// Stop withdraws the announcement. Stopping twice is a no-op.
	Stop() error
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		TTL: 120 * time.Second,
	}
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// Timeout bounds FindGateway. Default: BrowseTimeout.
	Timeout time.Duration
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Timeout: BrowseTimeout,
	}
}
