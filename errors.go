// errors.go defines public error types for the vorbistag package.

package vorbistag

import "errors"

// Public error types for comment block encoding and decoding.
var (
	// ErrVendorTooLong indicates the vendor string does not fit the
	// 32-bit length field of the comment block.
	ErrVendorTooLong = errors.New("vorbistag: vendor string exceeds 32-bit length")

	// ErrTooManyComments indicates the tag list does not fit the 32-bit
	// comment count field.
	ErrTooManyComments = errors.New("vorbistag: comment count exceeds 32 bits")

	// ErrCommentTooLong indicates a single "name=value" entry does not fit
	// its 32-bit length field.
	ErrCommentTooLong = errors.New("vorbistag: comment entry exceeds 32-bit length")

	// ErrInvalidComment indicates a packet is not a well-formed Vorbis
	// comment block. This includes a wrong packet type or magic signature
	// and truncated length-prefixed fields. Every non-comment packet of a
	// stream parses to this error; callers use it to locate the comment
	// packet.
	ErrInvalidComment = errors.New("vorbistag: invalid comment header")
)
