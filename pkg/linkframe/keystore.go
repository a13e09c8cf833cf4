package linkframe

import "errors"

// ErrKeyNotFound is returned by a Keystore when key_id has no known key
// material. It maps to the frame codec's key_not_found error (spec
// §4.3, §6).
var ErrKeyNotFound = errors.New("linkframe: key not found")

// ErrShortBuffer is returned by a Keystore when out is too small to
// hold the key.
var ErrShortBuffer = errors.New("linkframe: short buffer")

// Keystore is the single interface the core consumes for key material.
// Implementations must be safe for concurrent calls to Lookup and must
// not mutate state observable outside the call (spec §2 item 4, §6).
// The core never persists, generates, or rotates key bytes itself; it
// only ever reads them through this interface.
type Keystore interface {
	// Lookup writes the key identified by keyID into out and returns
	// the number of bytes written. It returns ErrKeyNotFound if keyID
	// is unknown, or ErrShortBuffer if out cannot hold the key.
	Lookup(keyID uint32, out []byte) (int, error)
}
