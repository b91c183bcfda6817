package dispatch

import (
	"context"
	"net"
	"os"
	"testing"
	"time"
)

func TestLogSinkServerAppendsDatagrams(t *testing.T) {
	serverListen, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	addr := serverListen.LocalAddr().String()
	serverListen.Close()

	outPath := t.TempDir() + "/sink.log"
	s := NewLogSinkServer([]string{addr}, outPath, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	time.Sleep(50 * time.Millisecond)

	sender, err := net.DialUDP("udp4", nil, mustResolveUDP(t, addr))
	if err != nil {
		t.Fatalf("DialUDP: %v", err)
	}
	defer sender.Close()
	if _, err := sender.Write([]byte("datagram one")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		contents, err := os.ReadFile(outPath)
		if err == nil && len(contents) > 0 {
			if string(contents) != "datagram one" {
				t.Fatalf("sink contents = %q, want %q", contents, "datagram one")
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("timed out waiting for sink file to be written")
}
