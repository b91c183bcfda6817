package nmea

import (
	"github.com/BertoldVdb/go-ais"
	"github.com/aisdb/aisdb-go/pkg/report"
)

// Decoder wraps the external go-ais bitstream decoder. For each
// (payload, epoch) pair produced by ParseHeader, it attempts a decode;
// failures are swallowed (DecodeFailure, recovered locally). Successful
// decodes are classified into dynamic or static reports; every other
// decoded message type is discarded.
type Decoder struct {
	codec  ais.Codec
	source string
}

// NewDecoder builds a Decoder that tags every report it produces with
// source.
func NewDecoder(source string) *Decoder {
	return &Decoder{codec: ais.CodecNew(false, false), source: source}
}

// Decode attempts to decode one sentence payload. ok is false when the
// payload didn't decode at all (DecodeFailure) or decoded to a message
// type this pipeline doesn't classify (discarded per spec). isDynamic
// distinguishes which of dynamic/static is populated.
func (d *Decoder) Decode(payload string, epoch int32) (dyn *report.Dynamic, stat *report.Static, isDynamic bool, ok bool) {
	packet := ais.RawPacket{Payload: payload}
	decoded := d.codec.DecodePacket(packet)
	if decoded == nil {
		return nil, nil, false, false
	}

	switch msg := decoded.(type) {
	case ais.PositionReport:
		return d.dynamicFromPositionReport(msg, epoch), nil, true, true
	case ais.StandardClassBPositionReport:
		return d.dynamicFromClassB(msg, epoch), nil, true, true
	case ais.ExtendedClassBPositionReport:
		return d.dynamicFromExtendedClassB(msg, epoch), nil, true, true
	case ais.ShipStaticData:
		return nil, d.staticFromShipData(msg, epoch), false, true
	case ais.StaticDataReport:
		return nil, d.staticFromDataReport(msg, epoch), false, true
	default:
		return nil, nil, false, false
	}
}

func f32ptr(v float32) *float32 { return &v }
func u8ptr(v uint8) *uint8      { return &v }

func (d *Decoder) dynamicFromPositionReport(m ais.PositionReport, epoch int32) *report.Dynamic {
	r := &report.Dynamic{
		MMSI:      m.UserID,
		Epoch:     epoch,
		Longitude: m.Longitude,
		Latitude:  m.Latitude,
		COG:       f32ptr(m.Cog),
		SOG:       f32ptr(m.Sog),
		Heading:   f32ptr(float32(m.TrueHeading)),
		ROT:       f32ptr(m.RateOfTurn),
		Maneuver:  u8ptr(uint8(m.SpecialManoeuvreIndicator)),
		UTCSecond: u8ptr(uint8(m.Timestamp)),
		NavStatus: report.NavStatus(m.NavigationalStatus),
		Class:     report.ClassA,
		Source:    d.source,
	}
	return r
}

func (d *Decoder) dynamicFromClassB(m ais.StandardClassBPositionReport, epoch int32) *report.Dynamic {
	return &report.Dynamic{
		MMSI:      m.UserID,
		Epoch:     epoch,
		Longitude: m.Longitude,
		Latitude:  m.Latitude,
		COG:       f32ptr(m.Cog),
		SOG:       f32ptr(m.Sog),
		Heading:   f32ptr(float32(m.TrueHeading)),
		UTCSecond: u8ptr(uint8(m.Timestamp)),
		Class:     report.ClassB,
		Source:    d.source,
	}
}

func (d *Decoder) dynamicFromExtendedClassB(m ais.ExtendedClassBPositionReport, epoch int32) *report.Dynamic {
	return &report.Dynamic{
		MMSI:      m.UserID,
		Epoch:     epoch,
		Longitude: m.Longitude,
		Latitude:  m.Latitude,
		COG:       f32ptr(m.Cog),
		SOG:       f32ptr(m.Sog),
		Heading:   f32ptr(float32(m.TrueHeading)),
		UTCSecond: u8ptr(uint8(m.Timestamp)),
		Class:     report.ClassB,
		Source:    d.source,
	}
}

func u32ptr(v uint32) *uint32 { return &v }
func i32ptr(v int32) *int32   { return &v }

func (d *Decoder) staticFromShipData(m ais.ShipStaticData, epoch int32) *report.Static {
	return &report.Static{
		MMSI:        m.UserID,
		Epoch:       epoch,
		Name:        m.Name,
		CallSign:    m.CallSign,
		IMO:         u32ptr(m.ImoNumber),
		ShipType:    u8ptr(uint8(m.Type)),
		BowMeters:   i32ptr(int32(m.Dimension.A)),
		SternMeters: i32ptr(int32(m.Dimension.B)),
		PortMeters:  i32ptr(int32(m.Dimension.C)),
		StbdMeters:  i32ptr(int32(m.Dimension.D)),
		DraughtX10:  i32ptr(int32(m.MaximumStaticDraught * 10)),
		Destination: m.Destination,
		AISVersion:  u8ptr(uint8(m.AisVersion)),
		ETAMonth:    u8ptr(uint8(m.Eta.Month)),
		ETADay:      u8ptr(uint8(m.Eta.Day)),
		ETAHour:     u8ptr(uint8(m.Eta.Hour)),
		ETAMinute:   u8ptr(uint8(m.Eta.Minute)),
		Source:      d.source,
	}
}

func (d *Decoder) staticFromDataReport(m ais.StaticDataReport, epoch int32) *report.Static {
	s := &report.Static{
		MMSI:   m.UserID,
		Epoch:  epoch,
		Source: d.source,
	}
	if m.ReportA != nil {
		s.Name = m.ReportA.Name
	}
	if m.ReportB != nil {
		s.CallSign = m.ReportB.CallSign
		s.ShipType = u8ptr(uint8(m.ReportB.ShipType))
		s.BowMeters = i32ptr(int32(m.ReportB.Dimension.A))
		s.SternMeters = i32ptr(int32(m.ReportB.Dimension.B))
		s.PortMeters = i32ptr(int32(m.ReportB.Dimension.C))
		s.StbdMeters = i32ptr(int32(m.ReportB.Dimension.D))
	}
	return s
}
