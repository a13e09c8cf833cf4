package linkframe

// Record is one fully validated frame yielded by a Decoder.
type Record struct {
	Payload []byte
	Type    byte
	Flags   byte
}

// Decoder combines the COBS streaming parser with header validation,
// CRC checking, and session-bound authentication, giving callers the
// single entry point described in spec §4.5 and §6: feed it bytes from
// any transport, get back validated payloads.
//
// A Decoder considers at most one Session for authenticated frames,
// matching the "typical deployment maps (type, peer) to a single
// session" note in spec §4.5 step 5. Sess may be nil if the link never
// carries authenticated traffic.
type Decoder struct {
	sd   *StreamDecoder
	sess *Session
	ks   Keystore
}

// NewDecoder returns a Decoder that authenticates frames against sess
// (which may be nil) using ks to double-check key availability.
func NewDecoder(sess *Session, ks Keystore) *Decoder {
	return &Decoder{sd: NewStreamDecoder(), sess: sess, ks: ks}
}

// Feed appends data to the decoder's internal buffer and returns every
// frame fully decoded and validated as a result, in order. Malformed
// COBS framing or a failed header/CRC/auth check on one record never
// aborts the stream: that record is dropped and parsing resumes at the
// next delimiter, per spec §4.5's resynchronization rule.
//
// The returned consumed count always equals len(data): every input
// byte is either folded into a record just emitted, discarded as part
// of a rejected record, or held in the decoder's internal buffer
// awaiting the next delimiter (spec's need_more_data case). Callers
// following the spec's single-shot decode(stream)->(...)|need_more
// shape can treat a Feed call yielding no records as need_more_data.
func (d *Decoder) Feed(data []byte) (records []Record, consumed int) {
	for _, raw := range d.sd.Feed(data) {
		payload, frameType, flags, err := DecodeFrame(raw, d.sess, d.ks)
		if err != nil {
			continue
		}
		records = append(records, Record{Payload: payload, Type: frameType, Flags: flags})
	}
	return records, len(data)
}

// Session returns the session this decoder authenticates against.
func (d *Decoder) Session() *Session { return d.sess }
