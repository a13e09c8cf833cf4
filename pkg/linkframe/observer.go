package linkframe

// Observer is an optional hook for decode diagnostics. Spec §7 allows
// "a counter or callback... for observability but [it] is not part of
// the core contract" — this interface is that callback. The core never
// implements Observer itself; ObservingDecoder is the only caller, and
// it requires a non-nil Observer.
type Observer interface {
	// OnDecoded is called once per record that ObservingDecoder.Feed
	// fully validates and returns to the caller.
	OnDecoded(frameType byte, flags byte)
	// OnRejected is called once per record ObservingDecoder.Feed drops,
	// naming the ErrorKind that caused the rejection.
	OnRejected(kind ErrorKind)
}

// ObservingDecoder wraps a Decoder and reports every outcome to obs.
// It is a thin convenience layer for callers that want metrics without
// re-implementing the Feed loop themselves.
type ObservingDecoder struct {
	d   *Decoder
	obs Observer
}

// NewObservingDecoder wraps d so that every Feed outcome is reported to
// obs. obs must not be nil.
func NewObservingDecoder(d *Decoder, obs Observer) *ObservingDecoder {
	return &ObservingDecoder{d: d, obs: obs}
}

// Feed behaves like Decoder.Feed, additionally invoking obs for every
// record accepted or rejected along the way.
func (o *ObservingDecoder) Feed(data []byte) (records []Record, consumed int) {
	for _, raw := range o.d.sd.Feed(data) {
		payload, frameType, flags, err := DecodeFrame(raw, o.d.sess, o.d.ks)
		if err != nil {
			kind := ErrKindMalformedHeader
			if ce, ok := err.(*CodecError); ok {
				kind = ce.Kind
			}
			o.obs.OnRejected(kind)
			continue
		}
		o.obs.OnDecoded(frameType, flags)
		records = append(records, Record{Payload: payload, Type: frameType, Flags: flags})
	}
	return records, len(data)
}
