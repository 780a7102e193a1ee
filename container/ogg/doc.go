// Package ogg implements packet-level reading and writing of Ogg streams.
//
// This package provides the container primitives the vorbistag package is
// built on: it parses Ogg pages as specified in RFC 3533 (The Ogg
// Encapsulation Format), reassembles the packets they carry, and writes
// packets back out with caller-controlled page boundaries. It knows nothing
// about the codec framed inside the container; header interpretation is the
// caller's business.
//
// The Ogg format uses pages as atomic units of data, where each page
// contains:
//   - A 27-byte header with magic signature "OggS"
//   - A segment table (lacing values) describing packet boundaries
//   - Payload data containing one or more packets, possibly including the
//     head or tail of a packet that spans pages
//   - CRC-32 checksum for data integrity verification
//
// # Page Structure
//
// An Ogg page has the following layout, all integers little-endian:
//
//	Bytes 0-3:   "OggS" capture pattern (magic signature)
//	Byte 4:      Stream structure version (always 0)
//	Byte 5:      Header type flags (continuation, BOS, EOS)
//	Bytes 6-13:  Granule position (codec-defined timing marker)
//	Bytes 14-17: Bitstream serial number
//	Bytes 18-21: Page sequence number
//	Bytes 22-25: CRC checksum
//	Byte 26:     Number of segments
//	Bytes 27+:   Segment table (one byte per segment)
//	Remaining:   Page payload data
//
// # Segment Table
//
// Packets are split into segments of up to 255 bytes each. A segment value
// of 255 indicates the packet continues in the next segment (or on the next
// page, when it is the final segment); a value less than 255 marks the end
// of a packet.
//
// Example: a 600-byte packet uses segments [255, 255, 90] (255+255+90=600).
//
// # Packets
//
// PacketReader yields Packet values in stream order across all logical
// streams of a physical stream (multiplexed streams are not filtered out).
// Each Packet carries its serial number, the granule position of the page
// it ends on, and framing flags: whether it opens or closes its page, and
// whether it opens or closes its logical stream. PacketWriter accepts the
// inverse contract: each packet is written together with an EndInfo value
// saying whether the page must be closed after it, so that a stream read
// with PacketReader and written back with PacketWriter keeps its original
// page grouping.
//
// # CRC Calculation
//
// Ogg uses CRC-32 with polynomial 0x04C11DB7 without bit reversal, which is
// NOT the IEEE variant implemented by hash/crc32. The CRC is computed over
// the entire page with the CRC field set to zero.
//
// # References
//
//   - RFC 3533: The Ogg Encapsulation Format Version 0
//   - Vorbis I specification, section 4.2 (header packet framing)
package ogg
