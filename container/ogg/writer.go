package ogg

import (
	"io"
)

// EndInfo tells the writer what to do with the current page after a packet
// has been queued on it.
type EndInfo int

const (
	// EndNormal leaves the page open; further packets may share it.
	EndNormal EndInfo = iota

	// EndPage closes the page after this packet.
	EndPage

	// EndStream closes the page and marks it end-of-stream. The logical
	// stream accepts no further packets.
	EndStream
)

// PacketWriter frames packets into Ogg pages. Packets accumulate on a page
// per logical stream until the caller closes the page with EndPage or
// EndStream, or until the page's segment table fills up, in which case the
// packet spills onto a continuation page.
//
// The first page written for a serial automatically carries the BOS flag.
type PacketWriter struct {
	w       io.Writer
	streams map[uint32]*logicalStream
}

// logicalStream is the per-serial page accumulation state.
type logicalStream struct {
	serial    uint32
	segments  []byte
	payload   []byte
	pageSeq   uint32
	started   bool   // BOS page already emitted
	closed    bool   // EOS page already emitted
	continued bool   // current page continues a packet from the previous one
	granule   uint64 // granule of the last packet completed on the current page
}

// NewPacketWriter returns a PacketWriter emitting pages to w.
func NewPacketWriter(w io.Writer) *PacketWriter {
	return &PacketWriter{
		w:       w,
		streams: make(map[uint32]*logicalStream),
	}
}

// WritePacket queues one packet on the page of the given logical stream.
// granulePos is recorded as the page's granule position if this packet is
// the last one completed on it. end controls whether the page is closed
// after the packet; see EndInfo.
//
// Returns ErrWriterClosed if the stream already received EndStream.
func (pw *PacketWriter) WritePacket(data []byte, serial uint32, end EndInfo, granulePos uint64) error {
	s := pw.streams[serial]
	if s == nil {
		s = &logicalStream{serial: serial, granule: NoGranule}
		pw.streams[serial] = s
	}
	if s.closed {
		return ErrWriterClosed
	}

	offset := 0
	for _, seg := range BuildSegmentTable(len(data)) {
		if len(s.segments) == maxSegments {
			// Segment table full: emit what we have. This is only a
			// mid-packet break needing a continuation page if part of
			// this packet has already been laced; a table left exactly
			// full by the previous packet is an ordinary page boundary.
			if err := pw.flush(s, false, offset > 0); err != nil {
				return err
			}
		}
		s.segments = append(s.segments, seg)
		s.payload = append(s.payload, data[offset:offset+int(seg)]...)
		offset += int(seg)
	}

	// The packet is now complete on the current page.
	s.granule = granulePos

	switch end {
	case EndPage:
		return pw.flush(s, false, false)
	case EndStream:
		if err := pw.flush(s, true, false); err != nil {
			return err
		}
		s.closed = true
	}
	return nil
}

// flush encodes and writes the stream's pending page. midPacket marks the
// flush as happening inside a packet, so the next page gets the
// continuation flag and this page keeps the granule of its last completed
// packet (NoGranule if none).
func (pw *PacketWriter) flush(s *logicalStream, eos, midPacket bool) error {
	var flags byte
	if s.continued {
		flags |= FlagContinuation
	}
	if !s.started {
		flags |= FlagBOS
	}
	if eos {
		flags |= FlagEOS
	}

	page := &Page{
		HeaderType:   flags,
		GranulePos:   s.granule,
		SerialNumber: s.serial,
		PageSequence: s.pageSeq,
		Segments:     s.segments,
		Payload:      s.payload,
	}

	if _, err := pw.w.Write(page.Encode()); err != nil {
		return err
	}

	s.pageSeq++
	s.started = true
	s.segments = nil
	s.payload = nil
	s.continued = midPacket
	s.granule = NoGranule
	return nil
}
