/*
Package linkframe implements a secure, deterministic wire protocol for
exchanging telemetry and command messages between constrained endpoints —
embedded devices and the host controllers that talk to them.

The package covers framing, integrity, authentication, and replay
protection:

  - COBS framing with a single 0x00 delimiter between records.
  - CRC16-CCITT integrity over the cleartext record.
  - HMAC-SHA256 authentication, truncated to a 16-byte tag, with
    constant-time verification.
  - A per-link Session that enforces strictly monotonic sequence numbers
    on both the sending and receiving side.

Everything here is synchronous, bounded, and allocation-light: encode and
decode are O(n) in record size, operate on caller-supplied buffers where
practical, and never touch a clock, a mutex, or a logger. Transport I/O,
key persistence, and payload schemas are the caller's concern; this
package only ever sees byte slices it is handed directly.

# Wire format

	version(1) type(1) flags(1) reserved(1) length(2) [seq(4)] payload(length) [tag(16)] crc16(2)

All multi-byte fields are big-endian. seq and tag are present if and only
if bit 0 of flags is set. The whole record (header through crc16) is
COBS-encoded and terminated with a single 0x00 byte on the wire.

# Frame classes

The type byte's low bit selects the frame's class: even values are
telemetry, odd values are command. Command frames are always
authenticated; telemetry frames may optionally be.

A Session is not safe for concurrent sign/verify calls; distinct
Sessions may be driven from different goroutines independently.
*/
package linkframe
