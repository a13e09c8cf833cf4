package linkframe

import "encoding/binary"

// ProtocolVersion is the only version byte this codec accepts on
// decode and ever writes on encode (spec §3).
const ProtocolVersion byte = 0x01

const (
	headerSize    = 6 // version, type, flags, reserved, length(2)
	seqSize       = 4
	tagSize       = 16
	crcSize       = 2
	maxPayloadLen = 1024

	flagAuthPresent byte = 1 << 0
	flagReservedMask     = ^flagAuthPresent // every bit except bit 0 must be zero
)

// Header is the fixed, cleartext prefix of a linkframe record (spec
// §3). Seq is only meaningful, and only present on the wire, when
// AuthPresent() is true.
type Header struct {
	Version  byte
	Type     byte
	Flags    byte
	Reserved byte
	Length   uint16
	Seq      uint32
}

// AuthPresent reports whether bit 0 of Flags is set.
func (h Header) AuthPresent() bool {
	return h.Flags&flagAuthPresent != 0
}

// CommandClass reports whether Type identifies a command-class frame.
// This codec uses bit 0 of the type byte to select the class: odd
// values are commands, even values are telemetry. Command-class frames
// are always authenticated (spec §3 invariants).
func CommandClass(frameType byte) bool {
	return frameType&0x01 != 0
}

// marshalHeader writes the cleartext header (and seq, if authPresent)
// into dst in wire order and returns the number of bytes written.
// Callers must ensure len(dst) >= headerSize+seqSize.
func marshalHeader(dst []byte, h Header, authPresent bool) int {
	dst[0] = h.Version
	dst[1] = h.Type
	flags := h.Flags
	if authPresent {
		flags |= flagAuthPresent
	} else {
		flags &^= flagAuthPresent
	}
	dst[2] = flags
	dst[3] = 0x00 // reserved, always zero on transmit
	binary.BigEndian.PutUint16(dst[4:6], h.Length)
	n := headerSize
	if authPresent {
		binary.BigEndian.PutUint32(dst[n:n+seqSize], h.Seq)
		n += seqSize
	}
	return n
}

// unmarshalHeader parses the cleartext prefix of raw into a Header. It
// validates version, reserved bits, and the length bound, but it does
// not validate that raw's total length matches the schema implied by
// the parsed flags — that cross-check happens in DecodeFrame once the
// auth-present bit is known.
func unmarshalHeader(raw []byte) (Header, error) {
	if len(raw) < headerSize {
		return Header{}, newErr(ErrKindMalformedHeader)
	}
	h := Header{
		Version:  raw[0],
		Type:     raw[1],
		Flags:    raw[2],
		Reserved: raw[3],
		Length:   binary.BigEndian.Uint16(raw[4:6]),
	}
	if h.Version != ProtocolVersion {
		return Header{}, newErr(ErrKindUnsupportedVersion)
	}
	if h.Reserved != 0 {
		return Header{}, newErr(ErrKindMalformedHeader)
	}
	if h.Flags&flagReservedMask != 0 {
		return Header{}, newErr(ErrKindMalformedHeader)
	}
	if h.Length > maxPayloadLen {
		return Header{}, newErr(ErrKindMalformedHeader)
	}

	rest := raw[headerSize:]
	if h.AuthPresent() {
		if len(rest) < seqSize {
			return Header{}, newErr(ErrKindMalformedHeader)
		}
		h.Seq = binary.BigEndian.Uint32(rest[:seqSize])
	}
	return h, nil
}
