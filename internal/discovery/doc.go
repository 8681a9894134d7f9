// Package discovery provides mDNS-based discovery of self-hosted hubs.
//
// The hosted Smart Home Tech API lives at a fixed public address, but the
// same server can be self-hosted on a LAN. Self-hosted hubs advertise
// themselves over multicast DNS using the "_smarthome-api._tcp" service
// type with an "api=smart-home-tech" TXT record. This package browses for
// those advertisements so the client can offer discovered hubs as server
// choices instead of requiring the user to type an address.
//
// # Usage Example
//
//	hubs, err := discovery.ScanForHubs(5 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, hub := range hubs {
//	    fmt.Printf("Found: %s -> %s\n", hub.Name, hub.BaseURL())
//	}
//
// # Network Requirements
//
// Requires multicast support on the network interface; the hub must be on
// the same network segment and the firewall must allow mDNS (UDP 5353).
package discovery
