package linkframe

// SessionState is one of the three states a Session can be in (spec
// §4.4): Uninitialized before Init, Ready while signing/verifying,
// Wrapped once the sender has exhausted its sequence space.
type SessionState int

const (
	SessionUninitialized SessionState = iota
	SessionReady
	SessionWrapped
)

func (s SessionState) String() string {
	switch s {
	case SessionUninitialized:
		return "uninitialized"
	case SessionReady:
		return "ready"
	case SessionWrapped:
		return "wrapped"
	default:
		return "invalid"
	}
}

// Policy bits governing a Session's enforcement behavior (spec §3).
// Both default to true via DefaultPolicy.
type Policy struct {
	// RequireAuthForCommands is carried in the session's policy but is
	// not read by Encode or DecodeFrame: command-class frames are always
	// authenticated on encode and rejected on decode when they lack
	// auth, whether or not this bit is set.
	RequireAuthForCommands bool
	// FailClosedOnMissingKey causes decode to reject a frame outright
	// when the keystore cannot resolve the session's key id, rather
	// than falling back to whatever key material the session cached.
	FailClosedOnMissingKey bool
}

// DefaultPolicy returns the spec's default policy: both bits on.
func DefaultPolicy() Policy {
	return Policy{RequireAuthForCommands: true, FailClosedOnMissingKey: true}
}

// Session holds the mutable state tying a pre-shared key to one side of
// a link: the key material itself, the session-scoped nonce, and the
// monotonic sequence counters used for replay protection (spec §3,
// §4.4). A Session is not safe for concurrent Sign/Verify calls; use
// one Session per goroutine-confined link.
type Session struct {
	state SessionState

	keyID uint32
	key   []byte
	nonce uint64

	nextSeq         uint32
	lastAcceptedSeq uint32
	seqKnown        bool

	policy Policy
}

// NewSession constructs and initializes a Session (spec §4.4 init).
// key is copied; the caller's slice may be reused or zeroized
// afterward. startSeq is the first sequence value Sign will use.
func NewSession(keyID uint32, key []byte, nonce uint64, startSeq uint32, policy Policy) *Session {
	s := &Session{}
	s.Init(keyID, key, nonce, startSeq, policy)
	return s
}

// Init (re-)establishes the session's identity: key, nonce, and
// starting sequence. It is idempotent when called with identical
// arguments and always leaves the session in the Ready state with
// last_accepted_seq cleared (spec §4.4).
func (s *Session) Init(keyID uint32, key []byte, nonce uint64, startSeq uint32, policy Policy) {
	s.keyID = keyID
	s.key = append(s.key[:0], key...)
	s.nonce = nonce
	s.nextSeq = startSeq
	s.lastAcceptedSeq = 0
	s.seqKnown = false
	s.policy = policy
	s.state = SessionReady
}

// KeyID returns the session's key identifier.
func (s *Session) KeyID() uint32 { return s.keyID }

// State returns the session's current state.
func (s *Session) State() SessionState { return s.state }

// NextSeq returns the sequence number the next Sign call will use.
func (s *Session) NextSeq() uint32 { return s.nextSeq }

// LastAcceptedSeq returns the high-water mark Verify has accepted.
func (s *Session) LastAcceptedSeq() uint32 { return s.lastAcceptedSeq }

// Policy returns the session's enforcement policy.
func (s *Session) Policy() Policy { return s.policy }

// Sign computes the authentication tag for (header, payload) using
// this session's key and the next sequence number, then advances the
// sequence counter (spec §4.4). The tag covers the header with its Seq
// set to the sequence actually used, which is returned as seqUsed; the
// caller's Header value is not modified. If the sequence space would wrap, the
// session transitions to Wrapped and returns ErrSequenceWrap without
// consuming a sequence number or mutating any other state.
func (s *Session) Sign(header Header, payload []byte) (tag [tagSize]byte, seqUsed uint32, err error) {
	if s.state != SessionReady {
		return tag, 0, newErr(ErrKindSequenceWrap)
	}
	if s.nextSeq == 0xFFFFFFFF {
		s.state = SessionWrapped
		return tag, 0, newErr(ErrKindSequenceWrap)
	}

	seqUsed = s.nextSeq
	header.Seq = seqUsed

	scratch := make([]byte, headerSize+seqSize+len(payload))
	input := buildMACInput(scratch, header, payload)
	tag = signTag(s.key, input)

	s.nextSeq++
	return tag, seqUsed, nil
}

// Verify checks tag against (header, payload) in constant time and
// enforces strict sequence monotonicity (spec §4.4). The order is tag
// verification first, then sequence check, matching the frame codec's
// tie-break rules. No state is mutated unless both checks pass.
func (s *Session) Verify(header Header, payload, tag []byte, seqRx uint32) error {
	if s.state != SessionReady {
		return newErr(ErrKindAuthFailed)
	}

	header.Seq = seqRx
	scratch := make([]byte, headerSize+seqSize+len(payload))
	input := buildMACInput(scratch, header, payload)
	if !verifyTag(s.key, input, tag) {
		return newErr(ErrKindAuthFailed)
	}

	if s.seqKnown && seqRx <= s.lastAcceptedSeq {
		return newErr(ErrKindReplay)
	}

	s.lastAcceptedSeq = seqRx
	s.seqKnown = true
	return nil
}

// Rotate zeroizes the current key material and re-initializes the
// session under a new identity, returning it to Ready (spec §4.4).
// Rotate is REQUIRED before next_seq would wrap past 0xFFFFFFFF.
func (s *Session) Rotate(newKeyID uint32, newKey []byte, newNonce uint64, newStartSeq uint32) {
	zeroize(s.key)
	s.Init(newKeyID, newKey, newNonce, newStartSeq, s.policy)
}

// Destroy zeroizes key material and moves the session to
// Uninitialized. Further Sign/Verify calls fail until Init is called
// again (spec §3 lifecycle).
func (s *Session) Destroy() {
	zeroize(s.key)
	s.key = nil
	s.state = SessionUninitialized
}

func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
