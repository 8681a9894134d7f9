package discovery

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantName string
		wantIP   string
		wantPort int
	}{
		{
			name: "valid hub with IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "hub.local.",
				Port:     3000,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.20")},
				Text:     []string{"api=smart-home-tech", "version=1.4.0"},
			},
			wantNil:  false,
			wantIP:   "192.168.1.20",
			wantPort: 3000,
		},
		{
			name: "hub with no port defaults to 3000",
			entry: &zeroconf.ServiceEntry{
				HostName: "hub.local.",
				Port:     0,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
				Text:     []string{"api=smart-home-tech"},
			},
			wantNil:  false,
			wantIP:   "10.0.0.5",
			wantPort: 3000,
		},
		{
			name: "service without the api tag is ignored",
			entry: &zeroconf.ServiceEntry{
				HostName: "printer.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.9")},
				Text:     []string{"path=/"},
			},
			wantNil: true,
		},
		{
			name: "hub with no address is ignored",
			entry: &zeroconf.ServiceEntry{
				HostName: "hub.local.",
				Port:     3000,
				Text:     []string{"api=smart-home-tech"},
			},
			wantNil: true,
		},
		{
			name: "IPv6-only hub",
			entry: &zeroconf.ServiceEntry{
				HostName: "hub.local.",
				Port:     3000,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
				Text:     []string{"api=smart-home-tech"},
			},
			wantNil:  false,
			wantIP:   "fe80::1",
			wantPort: 3000,
		},
		{
			name: "prefers IPv4 when both are present",
			entry: &zeroconf.ServiceEntry{
				HostName: "hub.local.",
				Port:     3000,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
				Text:     []string{"api=smart-home-tech"},
			},
			wantNil:  false,
			wantIP:   "192.168.1.50",
			wantPort: 3000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if hub != nil {
					t.Errorf("parseServiceEntry() = %+v, want nil", hub)
				}
				return
			}

			if hub == nil {
				t.Fatal("parseServiceEntry() = nil, want a hub")
			}
			if hub.IP != tt.wantIP {
				t.Errorf("IP = %s, want %s", hub.IP, tt.wantIP)
			}
			if hub.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", hub.Port, tt.wantPort)
			}
		})
	}
}

func TestHub_BaseURL(t *testing.T) {
	hub := &Hub{IP: "192.168.1.20", Port: 3000}

	if got := hub.BaseURL(); got != "http://192.168.1.20:3000" {
		t.Errorf("BaseURL() = %s, want http://192.168.1.20:3000", got)
	}
}

func TestHub_Version(t *testing.T) {
	hub := &Hub{Metadata: map[string]string{"api": "smart-home-tech", "version": "1.4.0"}}

	if got := hub.Version(); got != "1.4.0" {
		t.Errorf("Version() = %s, want 1.4.0", got)
	}

	empty := &Hub{Metadata: map[string]string{}}
	if got := empty.Version(); got != "" {
		t.Errorf("Version() = %s, want empty", got)
	}
}
