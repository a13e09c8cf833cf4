package linkframe

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// signTag computes the HMAC-SHA256 of macInput under key and returns
// the leftmost 16 bytes as the frame's authentication tag (spec §4.3).
func signTag(key, macInput []byte) [tagSize]byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(macInput)
	sum := mac.Sum(nil)

	var tag [tagSize]byte
	copy(tag[:], sum[:tagSize])
	return tag
}

// verifyTag recomputes the tag over macInput under key and compares it
// to got in constant time, byte-wise, with no early exit on mismatch
// (spec §4.3). It reports true only if all tagSize bytes match.
func verifyTag(key, macInput, got []byte) bool {
	if len(got) != tagSize {
		return false
	}
	want := signTag(key, macInput)
	return subtle.ConstantTimeCompare(want[:], got) == 1
}

// buildMACInput builds the cleartext bytes the HMAC is computed over: the
// header fields through seq, followed by the payload. The session
// nonce is deliberately not mixed in (spec §4.3 — the key+seq pair
// already scopes each frame uniquely within a session).
func buildMACInput(dst []byte, h Header, payload []byte) []byte {
	n := marshalHeader(dst, h, true)
	n += copy(dst[n:], payload)
	return dst[:n]
}
