package ogg

import (
	"encoding/binary"
)

// Page header flag constants.
const (
	// FlagContinuation indicates this page begins with data from a packet
	// that started on a previous page.
	FlagContinuation = 0x01

	// FlagBOS (Beginning of Stream) indicates this is the first page of a
	// logical bitstream.
	FlagBOS = 0x02

	// FlagEOS (End of Stream) indicates this is the last page of a logical
	// bitstream.
	FlagEOS = 0x04
)

const (
	// headerSize is the fixed portion of the page header (before the
	// segment table).
	headerSize = 27

	// maxSegments is the maximum number of lacing values per page.
	maxSegments = 255

	// capturePattern identifies the start of an Ogg page.
	capturePattern = "OggS"
)

// NoGranule is the granule position of a page on which no packet ends.
// RFC 3533 defines it as -1 in two's complement.
const NoGranule = ^uint64(0)

// Page is a single Ogg page, the atomic framing unit of the container.
type Page struct {
	// Version is the stream structure version (always 0).
	Version byte

	// HeaderType holds the page flags (continuation, BOS, EOS).
	HeaderType byte

	// GranulePos is the codec-defined timing marker of the last packet
	// completed on this page, or NoGranule if no packet ends here.
	GranulePos uint64

	// SerialNumber identifies the logical bitstream.
	SerialNumber uint32

	// PageSequence is the page sequence number within the bitstream.
	PageSequence uint32

	// Segments is the lacing table. Each entry is the size of one segment
	// (0-255); a value of 255 means the packet continues.
	Segments []byte

	// Payload is the concatenated packet data.
	Payload []byte
}

// IsBOS reports whether this is a beginning-of-stream page.
func (p *Page) IsBOS() bool { return p.HeaderType&FlagBOS != 0 }

// IsEOS reports whether this is an end-of-stream page.
func (p *Page) IsEOS() bool { return p.HeaderType&FlagEOS != 0 }

// IsContinuation reports whether this page continues a packet from a
// previous page.
func (p *Page) IsContinuation() bool { return p.HeaderType&FlagContinuation != 0 }

// BuildSegmentTable creates the lacing values for a packet of the given
// length. Packets of 255 bytes or more span multiple segments, each 255
// bytes except the final segment which holds the remainder. A packet whose
// length is an exact multiple of 255 needs a terminating zero-length
// segment.
func BuildSegmentTable(packetLen int) []byte {
	full := packetLen / 255
	rest := packetLen % 255

	segments := make([]byte, full+1)
	for i := 0; i < full; i++ {
		segments[i] = 255
	}
	segments[full] = byte(rest)
	return segments
}

// ParseSegmentTable extracts completed packet lengths from a lacing table.
// A trailing run of 255 values describes a packet that continues on the
// next page; its length is not included in the result. The second return
// value is the byte count of that unfinished tail (0 if none).
func ParseSegmentTable(segments []byte) (lengths []int, tail int) {
	current := 0
	open := false

	for _, seg := range segments {
		current += int(seg)
		open = seg == 255
		if !open {
			lengths = append(lengths, current)
			current = 0
		}
	}

	if open {
		tail = current
	}
	return lengths, tail
}

// Encode serializes the page with a freshly computed CRC.
//
// The output is the 27-byte header, the segment table, then the payload.
// The CRC is computed over the whole page with the CRC field zeroed.
func (p *Page) Encode() []byte {
	hdrSize := headerSize + len(p.Segments)
	data := make([]byte, hdrSize+len(p.Payload))

	copy(data[0:4], capturePattern)
	data[4] = p.Version
	data[5] = p.HeaderType
	binary.LittleEndian.PutUint64(data[6:14], p.GranulePos)
	binary.LittleEndian.PutUint32(data[14:18], p.SerialNumber)
	binary.LittleEndian.PutUint32(data[18:22], p.PageSequence)
	// CRC at bytes 22-25 is filled in last.
	data[26] = byte(len(p.Segments))
	copy(data[27:], p.Segments)
	copy(data[hdrSize:], p.Payload)

	binary.LittleEndian.PutUint32(data[22:26], crcSum(data))
	return data
}

// ParsePage parses one Ogg page from the front of data.
// It returns the parsed page and the number of bytes consumed.
// Returns ErrInvalidPage if the capture pattern is missing or the data is
// truncated, and ErrBadCRC if the checksum does not match.
func ParsePage(data []byte) (*Page, int, error) {
	if len(data) < headerSize {
		return nil, 0, ErrInvalidPage
	}
	if string(data[0:4]) != capturePattern {
		return nil, 0, ErrInvalidPage
	}

	p := &Page{
		Version:      data[4],
		HeaderType:   data[5],
		GranulePos:   binary.LittleEndian.Uint64(data[6:14]),
		SerialNumber: binary.LittleEndian.Uint32(data[14:18]),
		PageSequence: binary.LittleEndian.Uint32(data[18:22]),
	}
	storedCRC := binary.LittleEndian.Uint32(data[22:26])

	numSegments := int(data[26])
	hdrSize := headerSize + numSegments
	if len(data) < hdrSize {
		return nil, 0, ErrInvalidPage
	}

	p.Segments = make([]byte, numSegments)
	copy(p.Segments, data[27:hdrSize])

	payloadSize := 0
	for _, seg := range p.Segments {
		payloadSize += int(seg)
	}

	totalSize := hdrSize + payloadSize
	if len(data) < totalSize {
		return nil, 0, ErrInvalidPage
	}

	p.Payload = make([]byte, payloadSize)
	copy(p.Payload, data[hdrSize:totalSize])

	// Verify the CRC against a copy with the CRC field zeroed.
	pageCopy := make([]byte, totalSize)
	copy(pageCopy, data[:totalSize])
	pageCopy[22] = 0
	pageCopy[23] = 0
	pageCopy[24] = 0
	pageCopy[25] = 0
	if crcSum(pageCopy) != storedCRC {
		return nil, 0, ErrBadCRC
	}

	return p, totalSize, nil
}
