// Package discovery advertises the drawing server on the local network.
package discovery

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_garindraw._tcp"

// Advertise registers the server over mDNS. An empty instance uses the hostname.
// The returned func stops advertising.
func Advertise(instance string, port int) (func() error, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	service, err := mdns.NewMDNSService(
		instance,
		ServiceType,
		"",
		"",
		port,
		nil,
		[]string{"path=/ws"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}

	return server.Shutdown, nil
}
