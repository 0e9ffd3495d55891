package utils

import (
	"fmt"
	"net"
	"time"
)

// PingDatabaseServer checks that something accepts TCP connections at host:port.
func PingDatabaseServer(address string) error {
	return PingService(address, 1500*time.Millisecond)
}

// PingService checks if a service is reachable at the given address
func PingService(address string, timeout time.Duration) error {
	if _, _, err := net.SplitHostPort(address); err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}
