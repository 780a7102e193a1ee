package ogg

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// parsePages decodes every page of an encoded stream.
func parsePages(t *testing.T, data []byte) []*Page {
	t.Helper()
	var pages []*Page
	for len(data) > 0 {
		p, consumed, err := ParsePage(data)
		require.NoError(t, err)
		pages = append(pages, p)
		data = data[consumed:]
	}
	return pages
}

func TestPacketWriterSinglePage(t *testing.T) {
	var out bytes.Buffer
	pw := NewPacketWriter(&out)

	require.NoError(t, pw.WritePacket([]byte{1, 2, 3}, 77, EndNormal, 0))
	require.NoError(t, pw.WritePacket([]byte{4, 5}, 77, EndPage, 64))

	pages := parsePages(t, out.Bytes())
	require.Len(t, pages, 1)

	page := pages[0]
	require.True(t, page.IsBOS(), "first page of a stream carries BOS")
	require.False(t, page.IsEOS())
	require.Equal(t, uint32(77), page.SerialNumber)
	require.Equal(t, uint32(0), page.PageSequence)
	require.Equal(t, uint64(64), page.GranulePos, "page granule is the last completed packet's")
	require.Equal(t, []byte{3, 2}, page.Segments)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, page.Payload)
}

func TestPacketWriterEndStream(t *testing.T) {
	var out bytes.Buffer
	pw := NewPacketWriter(&out)

	require.NoError(t, pw.WritePacket([]byte{1}, 3, EndPage, 0))
	require.NoError(t, pw.WritePacket([]byte{2}, 3, EndStream, 100))

	pages := parsePages(t, out.Bytes())
	require.Len(t, pages, 2)
	require.True(t, pages[0].IsBOS())
	require.False(t, pages[0].IsEOS())
	require.False(t, pages[1].IsBOS())
	require.True(t, pages[1].IsEOS())
	require.Equal(t, uint32(1), pages[1].PageSequence)

	err := pw.WritePacket([]byte{3}, 3, EndNormal, 0)
	require.ErrorIs(t, err, ErrWriterClosed)
}

func TestPacketWriterSpillsOversizedPacket(t *testing.T) {
	// 255*255 bytes fill a page's segment table exactly and force the
	// terminating lacing value onto a continuation page.
	packet := bytes.Repeat([]byte{0x55}, 255*255)

	var out bytes.Buffer
	pw := NewPacketWriter(&out)
	require.NoError(t, pw.WritePacket(packet, 8, EndStream, 9999))

	pages := parsePages(t, out.Bytes())
	require.Len(t, pages, 2)

	require.True(t, pages[0].IsBOS())
	require.False(t, pages[0].IsContinuation())
	require.Equal(t, NoGranule, pages[0].GranulePos, "no packet ends on the first page")
	require.Len(t, pages[0].Segments, maxSegments)

	require.True(t, pages[1].IsContinuation())
	require.True(t, pages[1].IsEOS())
	require.Equal(t, uint64(9999), pages[1].GranulePos)
	require.Equal(t, []byte{0}, pages[1].Segments, "exact multiple of 255 ends with a zero lacing")
}

func TestPacketWriterFullTableBetweenPackets(t *testing.T) {
	// 254*255 bytes lace to exactly 255 segment table entries
	// (254 full lacings plus the zero terminator). Left open with
	// EndNormal, the next packet starts on a fresh page: an ordinary
	// page boundary, not a continuation.
	first := bytes.Repeat([]byte{0x66}, 254*255)
	second := []byte{1, 2, 3}

	var out bytes.Buffer
	pw := NewPacketWriter(&out)
	require.NoError(t, pw.WritePacket(first, 6, EndNormal, 100))
	require.NoError(t, pw.WritePacket(second, 6, EndStream, 200))

	pages := parsePages(t, out.Bytes())
	require.Len(t, pages, 2)

	require.Len(t, pages[0].Segments, maxSegments)
	require.Equal(t, uint64(100), pages[0].GranulePos, "first packet completed on the first page")
	require.False(t, pages[1].IsContinuation(), "second page starts a new packet")
	require.Equal(t, []byte{3}, pages[1].Segments)

	// Both packets survive a read-back.
	pr := NewPacketReader(bytes.NewReader(out.Bytes()))
	p1, err := pr.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, first, p1.Data)
	p2, err := pr.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, second, p2.Data)
	require.True(t, p2.LastInStream())
	_, err = pr.ReadPacket()
	require.ErrorIs(t, err, io.EOF)
}

func TestPacketWriterInterleavedSerials(t *testing.T) {
	var out bytes.Buffer
	pw := NewPacketWriter(&out)

	require.NoError(t, pw.WritePacket([]byte{0xa}, 1, EndPage, 0))
	require.NoError(t, pw.WritePacket([]byte{0xb}, 2, EndPage, 0))
	require.NoError(t, pw.WritePacket([]byte{0xc}, 1, EndStream, 5))

	pages := parsePages(t, out.Bytes())
	require.Len(t, pages, 3)
	require.Equal(t, uint32(1), pages[0].SerialNumber)
	require.Equal(t, uint32(2), pages[1].SerialNumber)
	require.Equal(t, uint32(1), pages[2].SerialNumber)
	require.True(t, pages[0].IsBOS())
	require.True(t, pages[1].IsBOS(), "each logical stream gets its own BOS page")
	require.Equal(t, uint32(1), pages[2].PageSequence, "page sequence counts per stream")
}

// TestWriterReaderRoundTrip checks that a stream written with the packet
// writer reads back with the same packets and framing, and that writing
// those packets again (classifying boundaries from their flags) reproduces
// the stream byte for byte. The rewriter relies on this to leave untouched
// streams untouched.
func TestWriterReaderRoundTrip(t *testing.T) {
	type wp struct {
		data    []byte
		end     EndInfo
		granule uint64
	}
	input := []wp{
		{data: []byte("first header"), end: EndPage, granule: 0},
		{data: []byte("second header"), end: EndNormal, granule: 0},
		{data: []byte("third header"), end: EndPage, granule: 0},
		{data: bytes.Repeat([]byte{0xf0}, 400), end: EndNormal, granule: 0},
		{data: []byte("audio"), end: EndPage, granule: 1024},
		{data: []byte("tail"), end: EndStream, granule: 2048},
	}

	var original bytes.Buffer
	pw := NewPacketWriter(&original)
	for _, in := range input {
		require.NoError(t, pw.WritePacket(in.data, 99, in.end, in.granule))
	}

	// Read back and verify packet-level framing.
	pr := NewPacketReader(bytes.NewReader(original.Bytes()))
	var packets []*Packet
	for {
		p, err := pr.ReadPacket()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		packets = append(packets, p)
	}
	require.Len(t, packets, len(input))
	require.True(t, packets[0].FirstInStream)
	require.True(t, packets[len(packets)-1].LastInStream())

	// Write again, deriving EndInfo from the flags.
	var copied bytes.Buffer
	cw := NewPacketWriter(&copied)
	for _, p := range packets {
		end := EndNormal
		switch {
		case p.LastInStream():
			end = EndStream
		case p.LastInPage:
			end = EndPage
		}
		require.NoError(t, cw.WritePacket(p.Data, p.Serial, end, p.GranulePos))
	}

	require.Equal(t, original.Bytes(), copied.Bytes())
}
