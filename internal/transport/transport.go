// Package transport adapts a caller-chosen io.Reader (a serial port, a
// net.Conn, a test pipe) into a linkframe.Decoder, the kind of
// transport glue the core explicitly leaves external. Each Read is
// bounded to a fixed maxReadChunk-byte buffer so a misbehaving
// transport can never force an unbounded allocation here.
package transport

import (
	"errors"
	"fmt"
	"io"

	"github.com/barnettlynn/linkguard/pkg/linkframe"
)

// maxReadChunk bounds each individual Read call. It does not bound the
// decoder's own internal buffer, which linkframe.StreamDecoder already
// caps at the maximum record size.
const maxReadChunk = 4096

// StreamReader pumps bytes from an io.Reader into a linkframe.Decoder
// and hands completed, validated records to a caller-supplied sink.
type StreamReader struct {
	r   io.Reader
	dec *linkframe.Decoder
}

// NewStreamReader returns a StreamReader that feeds bytes read from r
// into dec.
func NewStreamReader(r io.Reader, dec *linkframe.Decoder) *StreamReader {
	return &StreamReader{r: r, dec: dec}
}

// Run reads from the underlying io.Reader until it returns an error
// (io.EOF on graceful close), calling onRecord for every frame the
// decoder validates along the way. Run returns nil on io.EOF and the
// underlying error otherwise.
func (s *StreamReader) Run(onRecord func(linkframe.Record)) error {
	buf := make([]byte, maxReadChunk)
	for {
		n, err := s.r.Read(buf)
		if n > 0 {
			records, _ := s.dec.Feed(buf[:n])
			for _, rec := range records {
				onRecord(rec)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("transport read: %w", err)
		}
	}
}
