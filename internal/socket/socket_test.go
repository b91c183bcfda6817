package socket

import (
	"net"
	"testing"
)

func TestBindUnicastLoopback(t *testing.T) {
	conn, err := Bind("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer conn.Close()
	if conn.LocalAddr() == nil {
		t.Fatal("expected a local address")
	}
}

func TestJoinUnicastBindsDirectly(t *testing.T) {
	conn, err := Join("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	defer conn.Close()
}

func TestJoinIPv4MulticastBindsWildcard(t *testing.T) {
	conn, err := Join("239.192.0.1:0")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		t.Fatalf("LocalAddr() = %T, want *net.UDPAddr", conn.LocalAddr())
	}
	if !local.IP.IsUnspecified() {
		t.Fatalf("local addr = %s, want the wildcard address, not the multicast group", local.IP)
	}
}

func TestJoinIPv6MulticastBindsWildcard(t *testing.T) {
	conn, err := Join("[ff02::1]:0")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		t.Fatalf("LocalAddr() = %T, want *net.UDPAddr", conn.LocalAddr())
	}
	if !local.IP.IsUnspecified() {
		t.Fatalf("local addr = %s, want the wildcard address, not the multicast group", local.IP)
	}
}

func TestOpenDownstreamIPv4Multicast(t *testing.T) {
	conn, err := OpenDownstream("239.192.0.1:9999")
	if err != nil {
		t.Fatalf("OpenDownstream: %v", err)
	}
	defer conn.Close()
}

func TestAddrFamilyDetection(t *testing.T) {
	if addrFamily("127.0.0.1") != familyV4 {
		t.Fatal("expected familyV4")
	}
	if addrFamily("::1") != familyV6 {
		t.Fatal("expected familyV6")
	}
}

func TestIsMulticast(t *testing.T) {
	if !isMulticast("239.192.0.1") {
		t.Fatal("239.192.0.1 should be multicast")
	}
	if isMulticast("127.0.0.1") {
		t.Fatal("127.0.0.1 should not be multicast")
	}
}
