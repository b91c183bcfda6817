package receiver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aisdb/aisdb-go/internal/aislog"
	"github.com/aisdb/aisdb-go/internal/batch"
	"github.com/aisdb/aisdb-go/internal/metrics"
	"github.com/aisdb/aisdb-go/internal/nmea"
	"github.com/aisdb/aisdb-go/internal/socket"
	"github.com/aisdb/aisdb-go/pkg/report"
)

// Default per-class buffer flush thresholds, spec §4.14 step 1.
const (
	DefaultDynamicThreshold = 256
	DefaultStaticThreshold  = 64
)

// maxDatagramSize bounds a single UDP read; AIS datagrams are always
// small multiples of one sentence.
const maxDatagramSize = 32 * 1024

// Sink persists full batch buffers; satisfied by *batch.Writer.
type Sink interface {
	FlushDynamic(ctx context.Context, entries []report.Dynamic) error
	FlushStatic(ctx context.Context, entries []report.Static) error
}

// Receiver binds a UDP listener to the decode pipeline and the fabric's
// internal multicast downstream, per spec §4.14.
type Receiver struct {
	ListenAddr       string
	MulticastAddr    string // internal rendezvous position pings are published to
	RawRebroadcast   string // optional: also republish original datagram bytes here
	Tee              io.Writer
	Storage          Sink // optional persistent storage
	DynamicThreshold int
	StaticThreshold  int
	Source           string

	decoder *nmea.Decoder
	dynBuf  *batch.Buffer[report.Dynamic]
	statBuf *batch.Buffer[report.Static]
}

func (r *Receiver) init() {
	if r.decoder == nil {
		r.decoder = nmea.NewDecoder(r.Source)
	}
	if r.DynamicThreshold == 0 {
		r.DynamicThreshold = DefaultDynamicThreshold
	}
	if r.StaticThreshold == 0 {
		r.StaticThreshold = DefaultStaticThreshold
	}
	if r.dynBuf == nil {
		r.dynBuf = batch.NewBuffer[report.Dynamic](r.DynamicThreshold)
	}
	if r.statBuf == nil {
		r.statBuf = batch.NewBuffer[report.Static](r.StaticThreshold)
	}
}

// Run joins ListenAddr and processes datagrams until ctx is cancelled or
// the socket closes.
func (r *Receiver) Run(ctx context.Context) error {
	r.init()

	in, err := socket.Join(r.ListenAddr)
	if err != nil {
		return err
	}
	defer in.Close()

	var mcOut, rawOut *net.UDPConn
	var mcDst, rawDst *net.UDPAddr
	if r.MulticastAddr != "" {
		mcOut, mcDst, err = dialDownstream(r.MulticastAddr)
		if err != nil {
			return err
		}
		defer mcOut.Close()
	}
	if r.RawRebroadcast != "" {
		rawOut, rawDst, err = dialDownstream(r.RawRebroadcast)
		if err != nil {
			return err
		}
		defer rawOut.Close()
	}

	go func() {
		<-ctx.Done()
		in.Close()
	}()

	buf := make([]byte, maxDatagramSize)
	for {
		n, _, err := in.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return r.flushResidual(ctx)
			}
			aislog.Errorf("receiver: read failed: %v", err)
			continue
		}
		datagram := append([]byte(nil), buf[:n]...)
		r.handleDatagram(ctx, datagram, mcOut, mcDst, rawOut, rawDst)
	}
}

func dialDownstream(addr string) (*net.UDPConn, *net.UDPAddr, error) {
	conn, err := socket.OpenDownstream(addr)
	if err != nil {
		return nil, nil, err
	}
	network := "udp4"
	if conn.LocalAddr().(*net.UDPAddr).IP.To4() == nil {
		network = "udp6"
	}
	dst, err := net.ResolveUDPAddr(network, addr)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, dst, nil
}

func (r *Receiver) handleDatagram(ctx context.Context, datagram []byte, mcOut *net.UDPConn, mcDst *net.UDPAddr, rawOut *net.UDPConn, rawDst *net.UDPAddr) {
	r.maybeFlush(ctx)

	for _, sentence := range strings.Split(string(datagram), "\r\n") {
		if sentence == "" {
			continue
		}
		r.handleSentence(ctx, sentence, mcOut, mcDst)
	}

	if rawOut != nil {
		if _, err := rawOut.WriteToUDP(datagram, rawDst); err != nil {
			aislog.Warnf("receiver: raw rebroadcast failed: %v", err)
		}
	}
	if r.Tee != nil {
		r.Tee.Write(datagram)
	}
}

func (r *Receiver) handleSentence(ctx context.Context, line string, mcOut *net.UDPConn, mcDst *net.UDPAddr) {
	sentence, epoch, err := nmea.ParseHeader(line)
	if err != nil {
		metrics.DecodeFailures.With(prometheus.Labels{"stage": "nmea"}).Inc()
		return
	}
	if nmea.Skip(sentence) {
		return
	}
	payload, ok := nmea.PayloadField(sentence)
	if !ok {
		metrics.DecodeFailures.With(prometheus.Labels{"stage": "nmea"}).Inc()
		return
	}

	dyn, stat, isDynamic, ok := r.decoder.Decode(payload, epoch)
	if !ok {
		metrics.DecodeFailures.With(prometheus.Labels{"stage": "nmea"}).Inc()
		return
	}

	if isDynamic {
		if !HasCoordinates(dyn) {
			return
		}
		if mcOut != nil {
			ping := NewPositionPing(dyn, time.Now().Unix())
			if encoded, err := json.Marshal(ping); err == nil {
				if _, err := mcOut.WriteToUDP(encoded, mcDst); err != nil {
					aislog.Warnf("receiver: multicast publish failed: %v", err)
				}
			}
		}
		if r.Storage != nil {
			if r.dynBuf.Add(*dyn) {
				r.flushDynamic(ctx)
			}
		}
		return
	}

	if r.Storage != nil {
		if r.statBuf.Add(*stat) {
			r.flushStatic(ctx)
		}
	}
}

func (r *Receiver) maybeFlush(ctx context.Context) {
	if r.Storage == nil {
		return
	}
	if r.dynBuf.Len() > r.DynamicThreshold {
		r.flushDynamic(ctx)
	}
	if r.statBuf.Len() > r.StaticThreshold {
		r.flushStatic(ctx)
	}
}

func (r *Receiver) flushDynamic(ctx context.Context) {
	if r.dynBuf.Len() == 0 {
		return
	}
	if err := r.Storage.FlushDynamic(ctx, r.dynBuf.Drain()); err != nil {
		aislog.Errorf("receiver: flushing dynamic batch: %v", err)
	}
}

func (r *Receiver) flushStatic(ctx context.Context) {
	if r.statBuf.Len() == 0 {
		return
	}
	if err := r.Storage.FlushStatic(ctx, r.statBuf.Drain()); err != nil {
		aislog.Errorf("receiver: flushing static batch: %v", err)
	}
}

func (r *Receiver) flushResidual(ctx context.Context) error {
	r.flushDynamic(ctx)
	r.flushStatic(ctx)
	return nil
}
