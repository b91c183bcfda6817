package dispatch

import (
	"context"
	"net"
	"os"
	"testing"
	"time"
)

func TestClientForwardsNonBlankLines(t *testing.T) {
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer listener.Close()

	c, err := NewClient([]string{listener.LocalAddr().String()}, false)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	tmp := t.TempDir() + "/input.txt"
	if err := os.WriteFile(tmp, []byte("line one\n\nline two\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background(), tmp) }()

	listener.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1024)
	n, _, err := listener.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("ReadFromUDP: %v", err)
	}
	if got := string(buf[:n]); got != "line one" {
		t.Fatalf("first datagram = %q, want %q", got, "line one")
	}

	n, _, err = listener.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("ReadFromUDP second: %v", err)
	}
	if got := string(buf[:n]); got != "line two" {
		t.Fatalf("second datagram = %q, want %q (blank line should be skipped)", got, "line two")
	}

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
