package ogg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRC(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		require.Equal(t, uint32(0), crcSum(nil))
	})

	// The Ogg polynomial, not IEEE: crc("OggS") has a known value accepted
	// by reference demuxers.
	t.Run("golden", func(t *testing.T) {
		require.Equal(t, uint32(0x5fb0a94f), crcSum([]byte("OggS")))
	})

	t.Run("update consistency", func(t *testing.T) {
		data := []byte("hello ogg world")
		require.Equal(t, crcSum(data), crcUpdate(crcSum(data[:7]), data[7:]))
	})
}

func TestBuildSegmentTable(t *testing.T) {
	tests := []struct {
		name      string
		packetLen int
		expected  []byte
	}{
		{name: "zero length", packetLen: 0, expected: []byte{0}},
		{name: "1 byte", packetLen: 1, expected: []byte{1}},
		{name: "254 bytes", packetLen: 254, expected: []byte{254}},
		{name: "255 needs terminator", packetLen: 255, expected: []byte{255, 0}},
		{name: "256 bytes", packetLen: 256, expected: []byte{255, 1}},
		{name: "510 needs terminator", packetLen: 510, expected: []byte{255, 255, 0}},
		{name: "600 bytes", packetLen: 600, expected: []byte{255, 255, 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, BuildSegmentTable(tt.packetLen))
		})
	}
}

func TestParseSegmentTable(t *testing.T) {
	tests := []struct {
		name     string
		segments []byte
		lengths  []int
		tail     int
	}{
		{name: "empty", segments: nil, lengths: nil, tail: 0},
		{name: "single packet", segments: []byte{100}, lengths: []int{100}, tail: 0},
		{name: "zero length packet", segments: []byte{0}, lengths: []int{0}, tail: 0},
		{name: "multi segment packet", segments: []byte{255, 255, 90}, lengths: []int{600}, tail: 0},
		{name: "two packets", segments: []byte{10, 20}, lengths: []int{10, 20}, tail: 0},
		{name: "exact multiple", segments: []byte{255, 0}, lengths: []int{255}, tail: 0},
		{name: "trailing continuation", segments: []byte{10, 255, 255}, lengths: []int{10}, tail: 510},
		{name: "only continuation", segments: []byte{255}, lengths: nil, tail: 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lengths, tail := ParseSegmentTable(tt.segments)
			require.Equal(t, tt.lengths, lengths)
			require.Equal(t, tt.tail, tail)
		})
	}
}

func TestPageRoundTrip(t *testing.T) {
	in := &Page{
		HeaderType:   FlagBOS,
		GranulePos:   0x1122334455667788,
		SerialNumber: 0xdeadbeef,
		PageSequence: 7,
		Segments:     []byte{3, 5},
		Payload:      []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}

	encoded := in.Encode()
	out, consumed, err := ParsePage(encoded)
	require.NoError(t, err)
	require.Equal(t, len(encoded), consumed)
	require.Equal(t, in, out)
	require.True(t, out.IsBOS())
	require.False(t, out.IsEOS())
	require.False(t, out.IsContinuation())
}

func TestParsePageConsumesOnePage(t *testing.T) {
	p1 := &Page{SerialNumber: 1, Segments: []byte{2}, Payload: []byte{0xa, 0xb}}
	p2 := &Page{SerialNumber: 1, PageSequence: 1, Segments: []byte{1}, Payload: []byte{0xc}}
	data := append(p1.Encode(), p2.Encode()...)

	out, consumed, err := ParsePage(data)
	require.NoError(t, err)
	require.Equal(t, []byte{0xa, 0xb}, out.Payload)

	out, _, err = ParsePage(data[consumed:])
	require.NoError(t, err)
	require.Equal(t, []byte{0xc}, out.Payload)
	require.Equal(t, uint32(1), out.PageSequence)
}

func TestParsePageErrors(t *testing.T) {
	valid := (&Page{Segments: []byte{3}, Payload: []byte{1, 2, 3}}).Encode()

	t.Run("short header", func(t *testing.T) {
		_, _, err := ParsePage(valid[:20])
		require.ErrorIs(t, err, ErrInvalidPage)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[0] = 'X'
		_, _, err := ParsePage(bad)
		require.ErrorIs(t, err, ErrInvalidPage)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, _, err := ParsePage(valid[:len(valid)-1])
		require.ErrorIs(t, err, ErrInvalidPage)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[len(bad)-1] ^= 0x01
		_, _, err := ParsePage(bad)
		require.ErrorIs(t, err, ErrBadCRC)
	})

	t.Run("corrupted granule", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[6] ^= 0x80
		_, _, err := ParsePage(bad)
		require.ErrorIs(t, err, ErrBadCRC)
	})
}
