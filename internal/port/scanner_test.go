package port

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsPortAvailable_FreePort verifies that a port nobody is listening
// on is reported as available.
func TestIsPortAvailable_FreePort(t *testing.T) {
	scanner := NewScanner()

	// Grab a free port from the OS, close it, then check it.
	listener, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	freePort := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	assert.True(t, scanner.IsPortAvailable(freePort, "tcp"))
}

// TestIsPortAvailable_BusyPort verifies that a bound TCP port is
// reported as unavailable.
func TestIsPortAvailable_BusyPort(t *testing.T) {
	scanner := NewScanner()

	listener, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer func() { _ = listener.Close() }()
	busyPort := listener.Addr().(*net.TCPAddr).Port

	assert.False(t, scanner.IsPortAvailable(busyPort, "tcp"))
}

func TestIsPortAvailable_UDP(t *testing.T) {
	scanner := NewScanner()

	conn, err := net.ListenPacket("udp", ":0")
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	busyPort := conn.LocalAddr().(*net.UDPAddr).Port

	assert.False(t, scanner.IsPortAvailable(busyPort, "udp"))
}

func TestIsPortAvailable_UnknownProtocol(t *testing.T) {
	scanner := NewScanner()
	assert.False(t, scanner.IsPortAvailable(8080, "sctp"),
		"unknown protocols must fail safe")
}
