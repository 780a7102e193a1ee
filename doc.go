// Package vorbistag reads and rewrites the Vorbis comment block of an
// Ogg Vorbis stream without touching the audio payload.
//
// The comment block is the second header packet of a Vorbis logical
// stream. It carries a vendor string identifying the encoder and an
// ordered list of name=value tag pairs (TITLE, ARTIST, ...). This package
// decodes that packet into a CommentHeader, lets callers edit it through
// case-insensitive tag operations, and re-emits the surrounding container
// with the packet swapped out and every framing detail of the other
// packets intact.
//
// # Comment Block Layout
//
// The encoded comment block, all integers little-endian:
//
//	Byte 0:      Packet type (3 for the comment header)
//	Bytes 1-6:   "vorbis" magic signature
//	Bytes 7-10:  Vendor string length in bytes
//	Next N:      Vendor string (UTF-8)
//	Next 4:      User comment count
//	For each comment:
//	  4 bytes:   Comment length in bytes
//	  N bytes:   Comment string ("name=value", UTF-8)
//	Final byte:  Framing bit (must be 1)
//
// # Reading and Rewriting
//
// ReadCommentHeader scans the container for the comment packet of the
// first logical stream and decodes it. ReplaceCommentHeader copies every
// packet of the container into a fresh in-memory stream, substituting the
// encoded form of the caller's CommentHeader for the first packet that
// parses as a comment block:
//
//	f, _ := os.Open("track.ogg")
//	hdr, err := vorbistag.ReadCommentHeader(f)
//	if err != nil {
//		log.Fatal(err)
//	}
//	hdr.ClearTag("title")
//	hdr.AddTag("title", "New Title")
//	f.Seek(0, io.SeekStart)
//	out, err := vorbistag.ReplaceCommentHeader(f, hdr)
//
// Every fallible operation has a Must* companion that panics instead of
// returning an error, for callers that treat failure as fatal.
//
// Container framing is handled by the container/ogg subpackage; this
// package only interprets the comment packet itself.
package vorbistag
