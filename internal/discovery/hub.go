package discovery

import (
	"fmt"
	"time"
)

// Hub represents a discovered self-hosted API server on the local network
type Hub struct {
	// Name is the mDNS instance name (e.g. "living-room-hub")
	Name string

	// Hostname is the mDNS hostname (e.g. "hub.local.")
	Hostname string

	// IP is the address to reach the hub at (IPv4 preferred)
	IP string

	// Port is the HTTP port the API listens on (typically 3000)
	Port int

	// Metadata contains additional mDNS TXT record data.
	// Known fields: "api=smart-home-tech", "version=..."
	Metadata map[string]string

	// DiscoveredAt is when the hub was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the hub
func (h *Hub) String() string {
	return fmt.Sprintf("Hub %s (%s) at %s:%d", h.Name, h.Hostname, h.IP, h.Port)
}

// BaseURL returns the HTTP base URL for the hub's API
func (h *Hub) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", h.IP, h.Port)
}

// Version returns the advertised API version, or empty string if the hub
// did not include one in its TXT records
func (h *Hub) Version() string {
	return h.Metadata["version"]
}
