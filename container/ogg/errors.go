package ogg

import "errors"

// Package-level errors for Ogg parsing and encoding.
var (
	// ErrInvalidPage indicates the page structure is malformed.
	// This includes missing "OggS" magic or truncated data.
	ErrInvalidPage = errors.New("ogg: invalid page structure")

	// ErrBadCRC indicates the page CRC checksum does not match the computed
	// value. This typically indicates data corruption.
	ErrBadCRC = errors.New("ogg: CRC mismatch")

	// ErrUnexpectedEOS indicates the physical stream ended in the middle of
	// a page or of a packet that was promised a continuation.
	ErrUnexpectedEOS = errors.New("ogg: unexpected end of stream")

	// ErrWriterClosed indicates a write was attempted on a logical stream
	// that already received its end-of-stream page.
	ErrWriterClosed = errors.New("ogg: logical stream already closed")
)
