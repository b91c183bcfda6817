package dispatch

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestProxyForwardsToDownstream(t *testing.T) {
	listener, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer listener.Close()

	proxyListen, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	proxyAddr := proxyListen.LocalAddr().String()
	proxyListen.Close()

	p, err := NewProxy([]string{proxyAddr}, []string{listener.LocalAddr().String()}, nil)
	if err != nil {
		t.Fatalf("NewProxy: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	time.Sleep(50 * time.Millisecond)

	sender, err := net.DialUDP("udp4", nil, mustResolveUDP(t, proxyAddr))
	if err != nil {
		t.Fatalf("DialUDP: %v", err)
	}
	defer sender.Close()
	if _, err := sender.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	listener.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1024)
	n, _, err := listener.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("ReadFromUDP: %v", err)
	}
	if got := string(buf[:n]); got != "hello" {
		t.Fatalf("forwarded datagram = %q, want %q", got, "hello")
	}
}

func mustResolveUDP(t *testing.T, addr string) *net.UDPAddr {
	t.Helper()
	a, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		t.Fatalf("ResolveUDPAddr: %v", err)
	}
	return a
}
