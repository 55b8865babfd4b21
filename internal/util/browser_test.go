package util

import (
	"net"
	"testing"
)

func TestPortAvailable(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Skipf("listen: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	if PortAvailable(port) {
		t.Fatalf("port %d is in use but reported available", port)
	}
}
