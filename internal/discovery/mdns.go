package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type self-hosted hubs advertise
	ServiceType = "_smarthome-api._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for hub discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the default API port for self-hosted hubs
	DefaultPort = 3000

	// apiTag is the TXT record value identifying a compatible hub
	apiTag = "smart-home-tech"
)

// Scanner handles mDNS hub discovery
type Scanner struct {
	// Timeout is the maximum time to wait for hub discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForHubs discovers all compatible hubs on the local network.
// Returns a list of discovered hubs or an error.
func (s *Scanner) ScanForHubs() ([]*Hub, error) {
	return s.ScanForHubsWithContext(context.Background())
}

// ScanForHubsWithContext discovers hubs with a custom context
func (s *Scanner) ScanForHubsWithContext(ctx context.Context) ([]*Hub, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	hubs := make([]*Hub, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Collect entries in a goroutine; zeroconf closes the channel when
	// browsing stops
	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			hub := s.parseServiceEntry(entry)
			if hub != nil {
				hubs = append(hubs, hub)
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for the timeout, then for the collector to drain
	<-ctx.Done()
	<-done

	return hubs, nil
}

// parseServiceEntry converts a zeroconf service entry to a Hub.
// Returns nil if the entry is not a compatible hub.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Hub {
	// Parse TXT records into metadata ("key=value" format)
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	// Only accept hubs that identify as the Smart Home Tech API
	if metadata["api"] != apiTag {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	return &Hub{
		Name:         entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForHubs is a convenience function to scan for hubs with a custom timeout
func ScanForHubs(timeout time.Duration) ([]*Hub, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForHubs()
}
