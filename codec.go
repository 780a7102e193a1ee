package vorbistag

import (
	"encoding/binary"
	"math"
	"strings"
)

// Comment block framing constants per Vorbis I section 5.
const (
	// commentPacketType is the packet type byte of the comment header.
	commentPacketType = 3

	// headerMagic is the codec name following the packet type byte.
	headerMagic = "vorbis"

	// framingBit terminates an encoded comment block.
	framingBit = 1

	// minCommentSize is type byte + magic + vendor length + comment count.
	minCommentSize = 1 + len(headerMagic) + 4 + 4
)

// fieldLen converts a byte count to the 32-bit length the wire format
// stores, or reports the given overflow error.
func fieldLen(n int, overflow error) (uint32, error) {
	if uint64(n) > math.MaxUint32 {
		return 0, overflow
	}
	return uint32(n), nil
}

// Encode serializes the header into the exact binary layout of a Vorbis
// comment packet (see the package documentation for the byte layout).
//
// It fails with ErrVendorTooLong, ErrTooManyComments or ErrCommentTooLong
// if a quantity does not fit its 32-bit field; the first overflow aborts
// the encode with no partial output.
func (h *CommentHeader) Encode() ([]byte, error) {
	vendorLen, err := fieldLen(len(h.Vendor), ErrVendorTooLong)
	if err != nil {
		return nil, err
	}
	count, err := fieldLen(len(h.Comments), ErrTooManyComments)
	if err != nil {
		return nil, err
	}

	size := minCommentSize + len(h.Vendor) + 1
	for _, c := range h.Comments {
		size += 4 + len(c.Name) + 1 + len(c.Value)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, commentPacketType)
	buf = append(buf, headerMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, vendorLen)
	buf = append(buf, h.Vendor...)
	buf = binary.LittleEndian.AppendUint32(buf, count)

	for _, c := range h.Comments {
		entryLen, err := fieldLen(len(c.Name)+1+len(c.Value), ErrCommentTooLong)
		if err != nil {
			return nil, err
		}
		buf = binary.LittleEndian.AppendUint32(buf, entryLen)
		buf = append(buf, c.Name...)
		buf = append(buf, '=')
		buf = append(buf, c.Value...)
	}

	buf = append(buf, framingBit)
	return buf, nil
}

// MustEncode is like Encode but panics on error, for callers that treat an
// oversized header as a programming error.
func (h *CommentHeader) MustEncode() []byte {
	data, err := h.Encode()
	if err != nil {
		panic(err)
	}
	return data
}

// ParseCommentHeader decodes the payload of a Vorbis comment packet.
//
// Any malformation — wrong packet type, wrong magic, a length field
// pointing past the end of the packet — yields ErrInvalidComment. Entries
// without a '=' separator are ignored, and a missing trailing framing byte
// is tolerated; both leniencies match what encoders in the wild produce.
func ParseCommentHeader(data []byte) (*CommentHeader, error) {
	if len(data) < minCommentSize {
		return nil, ErrInvalidComment
	}
	if data[0] != commentPacketType || string(data[1:1+len(headerMagic)]) != headerMagic {
		return nil, ErrInvalidComment
	}

	offset := 1 + len(headerMagic)

	vendorLen := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4
	if vendorLen < 0 || offset+vendorLen > len(data) {
		return nil, ErrInvalidComment
	}
	vendor := string(data[offset : offset+vendorLen])
	offset += vendorLen

	if offset+4 > len(data) {
		return nil, ErrInvalidComment
	}
	count := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4

	h := &CommentHeader{Vendor: vendor}
	for i := 0; i < count; i++ {
		if offset+4 > len(data) {
			return nil, ErrInvalidComment
		}
		entryLen := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
		offset += 4
		if entryLen < 0 || offset+entryLen > len(data) {
			return nil, ErrInvalidComment
		}
		entry := string(data[offset : offset+entryLen])
		offset += entryLen

		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		h.Comments = append(h.Comments, Comment{Name: name, Value: value})
	}

	return h, nil
}
