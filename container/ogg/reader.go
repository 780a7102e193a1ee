package ogg

import (
	"errors"
	"io"
)

// Packet is one logical packet reassembled from the container.
//
// The First* flags describe the page the packet starts on; LastInPage and
// EOS describe the page it ends on. For the common case of a packet that
// fits on a single page the two pages are the same.
type Packet struct {
	// Data is the packet payload.
	Data []byte

	// Serial is the logical bitstream the packet belongs to.
	Serial uint32

	// GranulePos is the granule position of the page the packet ends on,
	// forwarded as-is. NoGranule if no packet ends on that page.
	GranulePos uint64

	// FirstInPage is set if no packet data precedes this packet on the
	// page it starts on.
	FirstInPage bool

	// FirstInStream is set if the packet starts a logical stream (first
	// packet of a BOS page).
	FirstInStream bool

	// LastInPage is set if this is the last packet completed on the page
	// it ends on.
	LastInPage bool

	// EOS is set if the page the packet ends on carries the end-of-stream
	// flag.
	EOS bool
}

// LastInStream reports whether this is the final packet of its logical
// stream: the last packet completed on an end-of-stream page.
func (p *Packet) LastInStream() bool {
	return p.EOS && p.LastInPage
}

// readerBufferSize is the initial size of the internal read buffer.
const readerBufferSize = 64 * 1024

// PacketReader reassembles packets from the pages of a physical Ogg
// stream. Packets are returned in page order across all logical streams;
// callers that care about a single stream filter by Packet.Serial.
type PacketReader struct {
	r      io.Reader
	buf    []byte
	offset int
	length int
	queue  []*Packet
	// partial holds, per logical stream, the bytes of a packet whose end
	// has not been seen yet.
	partial map[uint32]*partialPacket
}

// partialPacket accumulates a packet that spans pages. The First* flags of
// its start page travel with it.
type partialPacket struct {
	data          []byte
	firstInPage   bool
	firstInStream bool
}

// NewPacketReader returns a PacketReader pulling pages from r.
func NewPacketReader(r io.Reader) *PacketReader {
	return &PacketReader{
		r:       r,
		buf:     make([]byte, readerBufferSize),
		partial: make(map[uint32]*partialPacket),
	}
}

// ReadPacket returns the next packet of the physical stream.
// It returns io.EOF once the underlying reader is exhausted and every
// buffered page has been consumed.
func (pr *PacketReader) ReadPacket() (*Packet, error) {
	for {
		if len(pr.queue) > 0 {
			p := pr.queue[0]
			pr.queue = pr.queue[1:]
			return p, nil
		}

		page, err := pr.readPage()
		if err != nil {
			return nil, err
		}
		pr.processPage(page)
	}
}

// processPage splits a page into packets, joining fragments of packets
// that span page boundaries, and queues every packet completed on it.
func (pr *PacketReader) processPage(page *Page) {
	lengths, tail := ParseSegmentTable(page.Segments)

	part := pr.partial[page.SerialNumber]
	delete(pr.partial, page.SerialNumber)

	offset := 0
	for i, length := range lengths {
		data := page.Payload[offset : offset+length]
		offset += length

		p := &Packet{
			Serial:     page.SerialNumber,
			GranulePos: page.GranulePos,
			LastInPage: i == len(lengths)-1,
			EOS:        page.IsEOS(),
		}

		if i == 0 && page.IsContinuation() {
			if part == nil {
				// Continuation with no recorded head: the stream was
				// picked up mid-packet. Drop the orphaned fragment.
				continue
			}
			p.Data = append(part.data, data...)
			p.FirstInPage = part.firstInPage
			p.FirstInStream = part.firstInStream
			part = nil
		} else {
			p.Data = data
			p.FirstInPage = i == 0
			p.FirstInStream = p.FirstInPage && page.IsBOS()
		}

		pr.queue = append(pr.queue, p)
	}

	if tail == 0 {
		return
	}

	// A packet starts (or continues) here and ends on a later page.
	head := page.Payload[offset : offset+tail]
	switch {
	case part != nil:
		// Packet spanning three or more pages with nothing completed in
		// between.
		part.data = append(part.data, head...)
		pr.partial[page.SerialNumber] = part
	case page.IsContinuation() && len(lengths) == 0:
		// Middle chunk of an orphaned packet; keep dropping it.
	default:
		first := len(lengths) == 0 && !page.IsContinuation()
		pr.partial[page.SerialNumber] = &partialPacket{
			data:          append([]byte(nil), head...),
			firstInPage:   first,
			firstInStream: first && page.IsBOS(),
		}
	}
}

// readPage reads and parses the next page, buffering as much input as a
// complete page needs.
func (pr *PacketReader) readPage() (*Page, error) {
	for {
		if pr.length > pr.offset {
			page, consumed, err := ParsePage(pr.buf[pr.offset:pr.length])
			switch {
			case err == nil:
				pr.offset += consumed
				return page, nil
			case errors.Is(err, ErrBadCRC):
				// A full page was present; corruption is a hard error.
				return nil, err
			}
			// ErrInvalidPage: possibly a truncated view, read more.
		}

		// Compact the buffer before refilling.
		if pr.offset > 0 {
			remaining := pr.length - pr.offset
			if remaining > 0 {
				copy(pr.buf, pr.buf[pr.offset:pr.length])
			}
			pr.length = remaining
			pr.offset = 0
		}

		// Grow if a single page exceeds the buffer.
		if pr.length >= len(pr.buf) {
			grown := make([]byte, len(pr.buf)*2)
			copy(grown, pr.buf[:pr.length])
			pr.buf = grown
		}

		n, err := pr.r.Read(pr.buf[pr.length:])
		if n > 0 {
			pr.length += n
		}
		if err != nil {
			if err == io.EOF && pr.length > pr.offset {
				page, consumed, parseErr := ParsePage(pr.buf[pr.offset:pr.length])
				if parseErr == nil {
					pr.offset += consumed
					return page, nil
				}
				if errors.Is(parseErr, ErrBadCRC) {
					return nil, parseErr
				}
				// Leftover bytes that never become a page.
				return nil, ErrUnexpectedEOS
			}
			return nil, err
		}
	}
}
