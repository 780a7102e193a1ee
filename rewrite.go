package vorbistag

import (
	"bytes"
	"fmt"
	"io"

	"github.com/oggtools/vorbistag/container/ogg"
)

// ReadCommentHeader scans the container for the comment packet of the
// first logical stream and decodes it.
//
// The first packet read fixes the target serial number; packets of other
// logical streams are skipped. The next packet of the target stream is by
// construction the comment header (it immediately follows the
// identification header), so a packet that fails to parse as one is
// surfaced as an error.
func ReadCommentHeader(r io.Reader) (*CommentHeader, error) {
	pr := ogg.NewPacketReader(r)

	first, err := pr.ReadPacket()
	if err != nil {
		return nil, fmt.Errorf("vorbistag: read identification packet: %w", err)
	}

	for {
		p, err := pr.ReadPacket()
		if err != nil {
			return nil, fmt.Errorf("vorbistag: read comment packet: %w", err)
		}
		if p.Serial != first.Serial {
			continue
		}
		return ParseCommentHeader(p.Data)
	}
}

// MustReadCommentHeader is like ReadCommentHeader but panics on error.
func MustReadCommentHeader(r io.Reader) *CommentHeader {
	h, err := ReadCommentHeader(r)
	if err != nil {
		panic(err)
	}
	return h
}

// ReplaceCommentHeader copies every packet of the container into a fresh
// in-memory stream, substituting the encoded form of h for the first
// packet of the first logical stream that parses as a comment block. All
// other packets keep their payload, serial number, granule position and
// page boundary classification.
//
// The returned reader is positioned at the start of the rewritten stream.
//
// Error policy: a failure to read the very first packet, to encode h, or
// to write any output packet fails the whole operation. A read failure
// while scanning for subsequent packets instead stops the copy and returns
// the output written so far; losing the tail of a damaged file beats
// losing everything already processed. If no packet parses as a comment
// block the input is copied through unchanged and no error is reported.
func ReplaceCommentHeader(r io.Reader, h *CommentHeader) (*bytes.Reader, error) {
	replacement, err := h.Encode()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	pr := ogg.NewPacketReader(r)
	pw := ogg.NewPacketWriter(&out)

	p, err := pr.ReadPacket()
	if err != nil {
		return nil, fmt.Errorf("vorbistag: read identification packet: %w", err)
	}
	serial := p.Serial

	replaced := false
	for {
		data := p.Data
		if !replaced && p.Serial == serial {
			if _, perr := ParseCommentHeader(p.Data); perr == nil {
				data = replacement
				replaced = true
			}
		}

		end := ogg.EndNormal
		switch {
		case p.LastInStream():
			end = ogg.EndStream
		case p.LastInPage:
			end = ogg.EndPage
		}

		if werr := pw.WritePacket(data, p.Serial, end, p.GranulePos); werr != nil {
			return nil, fmt.Errorf("vorbistag: write packet: %w", werr)
		}

		// The last packet of the terminal page ends the run.
		if p.LastInPage && p.LastInStream() {
			break
		}

		p, err = pr.ReadPacket()
		if err != nil {
			// End of input, or a read failure mid-scan: keep what was
			// already written.
			break
		}
	}

	return bytes.NewReader(out.Bytes()), nil
}

// MustReplaceCommentHeader is like ReplaceCommentHeader but panics on
// error.
func MustReplaceCommentHeader(r io.Reader, h *CommentHeader) *bytes.Reader {
	out, err := ReplaceCommentHeader(r, h)
	if err != nil {
		panic(err)
	}
	return out
}
