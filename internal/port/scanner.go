// Package port implements host port availability scanning.
//
// The doctor command uses it to warn when a target's configured port
// (e.g. the Web UI's dev server port) is already bound by another
// process, which would make the launched component fail or silently
// shadow whatever is listening there.
package port

import (
	"fmt"
	"net"
)

// Scanner checks whether specific ports are available on the host.
//
// It asks the OS directly via net.Listen / net.ListenPacket, which is
// more reliable than parsing /proc/net/* or shelling out to lsof/ss, and
// needs no elevated permissions. Defined as a struct so future options
// (bind address, timeout) can be added and so it stays injectable in
// tests.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// IsPortAvailable reports whether a single port is free on the host.
//
// Binding uses ":port" (all interfaces) rather than "127.0.0.1:port"
// because dev servers and Docker publish on 0.0.0.0, and the check must
// cover the same address space. The probe listener is closed immediately.
// Unknown protocols are treated as unavailable to fail safe.
func (s *Scanner) IsPortAvailable(portNum int, protocol string) bool {
	addr := fmt.Sprintf(":%d", portNum)

	switch protocol {
	case "tcp":
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return false
		}
		defer func() { _ = listener.Close() }()
		return true

	case "udp":
		conn, err := net.ListenPacket("udp", addr)
		if err != nil {
			return false
		}
		defer func() { _ = conn.Close() }()
		return true

	default:
		return false
	}
}
