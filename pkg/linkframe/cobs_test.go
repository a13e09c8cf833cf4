package linkframe

import (
	"bytes"
	"testing"
)

func encodeAll(t *testing.T, src []byte) []byte {
	t.Helper()
	dst := make([]byte, MaxEncodedLen(len(src)))
	n, err := COBSEncode(dst, src)
	if err != nil {
		t.Fatalf("COBSEncode(%v) error: %v", src, err)
	}
	return dst[:n]
}

func TestCOBSEncodeVectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"empty", []byte{}, []byte{0x01, 0x00}},
		{"single-zero", []byte{0x00}, []byte{0x01, 0x01, 0x00}},
		{"254-nonzero", bytes.Repeat([]byte{0xAB}, 254), append(append([]byte{0xFF}, bytes.Repeat([]byte{0xAB}, 254)...), 0x00)},
		{"255-nonzero", bytes.Repeat([]byte{0xCD}, 255), append(append([]byte{0xFF}, append(bytes.Repeat([]byte{0xCD}, 254), 0x02, 0xCD)...), 0x00)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := encodeAll(t, tc.in)
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("COBSEncode(%d bytes) = %X, want %X", len(tc.in), got, tc.want)
			}
		})
	}
}

func TestCOBSEncodeNeverContainsZeroExceptDelimiter(t *testing.T) {
	for _, n := range []int{0, 1, 2, 253, 254, 255, 600, 1049} {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte((i*37 + 1) % 256)
			if src[i] == 0 {
				src[i] = 1
			}
			if i%17 == 0 {
				src[i] = 0x00
			}
		}
		enc := encodeAll(t, src)
		for i, b := range enc[:len(enc)-1] {
			if b == 0x00 {
				t.Fatalf("n=%d: unexpected 0x00 at offset %d of encoded region", n, i)
			}
		}
		if enc[len(enc)-1] != 0x00 {
			t.Fatalf("n=%d: encoded record did not end with delimiter", n)
		}
		if len(enc) > MaxEncodedLen(n) {
			t.Fatalf("n=%d: encoded length %d exceeds bound %d", n, len(enc), MaxEncodedLen(n))
		}
	}
}

func TestCOBSRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 253, 254, 255, 1023, 1024, 1049} {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte((i*31 + 7) % 256)
			if i%13 == 0 {
				src[i] = 0x00
			}
		}
		enc := encodeAll(t, src)
		record := enc[:len(enc)-1] // strip delimiter

		dst := make([]byte, n)
		got, err := COBSDecode(dst, record)
		if err != nil {
			t.Fatalf("n=%d: COBSDecode error: %v", n, err)
		}
		if !bytes.Equal(dst[:got], src) {
			t.Fatalf("n=%d: round trip mismatch", n)
		}
	}
}

func TestCOBSDecodeRejectsTruncatedCode(t *testing.T) {
	// Code byte claims 5 bytes follow but only 2 remain.
	_, err := COBSDecode(make([]byte, 16), []byte{0x06, 0x01, 0x02})
	if !isKind(err, ErrKindCOBSDecode) {
		t.Fatalf("expected cobs_decode, got %v", err)
	}
}

func TestCOBSDecodeRejectsEmptyRecord(t *testing.T) {
	_, err := COBSDecode(make([]byte, 16), []byte{})
	if !isKind(err, ErrKindCOBSDecode) {
		t.Fatalf("expected cobs_decode for empty record, got %v", err)
	}
}

func TestCOBSDecodeRejectsEmbeddedZero(t *testing.T) {
	// Code byte claims 2 data bytes, but the second is 0x00.
	_, err := COBSDecode(make([]byte, 16), []byte{0x03, 0x01, 0x00})
	if !isKind(err, ErrKindCOBSDecode) {
		t.Fatalf("expected cobs_decode, got %v", err)
	}
}

func TestStreamDecoderMultiFrame(t *testing.T) {
	a := encodeAll(t, []byte("HELLO"))
	b := encodeAll(t, []byte{})
	c := encodeAll(t, []byte{0x00, 0x01, 0x02})

	stream := append(append(append([]byte{}, a...), b...), c...)

	sd := NewStreamDecoder()
	var got [][]byte
	for _, bb := range stream {
		got = append(got, sd.Feed([]byte{bb})...)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if string(got[0]) != "HELLO" {
		t.Fatalf("record 0 = %q, want HELLO", got[0])
	}
	if len(got[1]) != 0 {
		t.Fatalf("record 1 should be empty, got %v", got[1])
	}
	if !bytes.Equal(got[2], []byte{0x00, 0x01, 0x02}) {
		t.Fatalf("record 2 = %v, want [0 1 2]", got[2])
	}
}

func TestStreamDecoderResyncsAfterGarbage(t *testing.T) {
	sd := NewStreamDecoder()
	// Garbage record: code byte 0x05 claims 4 bytes but only 1 follows before delimiter.
	garbage := []byte{0x05, 0x01, 0x00}
	good := encodeAll(t, []byte("OK"))

	records := sd.Feed(append(garbage, good...))
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 record after resync, got %d", len(records))
	}
	if string(records[0]) != "OK" {
		t.Fatalf("got %q, want OK", records[0])
	}
}

func isKind(err error, kind ErrorKind) bool {
	ce, ok := err.(*CodecError)
	return ok && ce.Kind == kind
}
