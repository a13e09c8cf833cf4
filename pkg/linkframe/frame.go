package linkframe

// Encode builds one wire frame for payload and writes the COBS-encoded,
// delimiter-terminated record into dst (spec §4.5 encode operation).
//
// auth requests an authenticated frame; it is forced to true when
// frameType is command-class, since command frames MUST carry
// authentication regardless of the caller's wishes. sess is required
// whenever the resulting frame is authenticated.
//
// Encode returns the number of bytes written to dst, or an error:
// ErrPayloadTooLarge if len(payload) > 1024, ErrAuthRequired if
// authentication is needed but sess is nil, ErrSequenceWrap if sess has
// exhausted its sequence space, or ErrBufferTooSmall if dst cannot hold
// the encoded record.
func Encode(dst []byte, frameType byte, payload []byte, auth bool, sess *Session) (int, error) {
	if len(payload) > maxPayloadLen {
		return 0, newErr(ErrKindPayloadTooLarge)
	}

	authPresent := auth || CommandClass(frameType)
	if authPresent && sess == nil {
		return 0, newErr(ErrKindAuthRequired)
	}

	h := Header{
		Version: ProtocolVersion,
		Type:    frameType,
		Length:  uint16(len(payload)),
	}

	record := make([]byte, 0, maxRecordSize)
	record = record[:headerSize]
	n := marshalHeader(record, h, authPresent)
	record = record[:n]
	record = append(record, payload...)

	if authPresent {
		tag, seqUsed, err := sess.Sign(h, payload)
		if err != nil {
			return 0, err
		}
		// seqUsed must be reflected in the header bytes already
		// written; re-marshal now that Sign has assigned it.
		h.Seq = seqUsed
		marshalHeader(record, h, true)
		record = append(record, tag[:]...)
	}

	crc := CRC16(record)
	record = append(record, byte(crc>>8), byte(crc))

	return COBSEncode(dst, record)
}

// DecodeFrame validates and authenticates one already COBS-decoded,
// header-to-crc cleartext record (as produced by StreamDecoder.Feed)
// and returns its payload, type, and flags (spec §4.5 decode operation,
// steps 2-7).
//
// sess is the candidate session this decoder should consider for
// authenticated frames; a typical deployment maps (type, peer) to a
// single session and passes it here (spec §4.5 step 5). sess may be
// nil for a decoder that never expects authenticated traffic, in which
// case any authenticated or command-class frame is rejected.
func DecodeFrame(raw []byte, sess *Session, ks Keystore) (payload []byte, frameType byte, flags byte, err error) {
	h, err := unmarshalHeader(raw)
	if err != nil {
		return nil, 0, 0, err
	}

	headerLen := headerSize
	if h.AuthPresent() {
		headerLen += seqSize
	}
	bodyLen := int(h.Length)
	tagLen := 0
	if h.AuthPresent() {
		tagLen = tagSize
	}
	wantLen := headerLen + bodyLen + tagLen + crcSize
	if len(raw) != wantLen {
		return nil, 0, 0, newErr(ErrKindMalformedHeader)
	}

	gotCRC := uint16(raw[len(raw)-2])<<8 | uint16(raw[len(raw)-1])
	wantCRC := CRC16(raw[:len(raw)-crcSize])
	if gotCRC != wantCRC {
		return nil, 0, 0, newErr(ErrKindCRCMismatch)
	}

	payloadStart := headerLen
	payloadEnd := payloadStart + bodyLen
	payload = raw[payloadStart:payloadEnd]

	if !h.AuthPresent() {
		if CommandClass(h.Type) {
			return nil, 0, 0, newErr(ErrKindUnauthenticatedCommand)
		}
		return payload, h.Type, h.Flags, nil
	}

	tag := raw[payloadEnd : payloadEnd+tagSize]

	if sess == nil {
		return nil, 0, 0, newErr(ErrKindKeyNotFound)
	}

	// The session, not the keystore, holds the authoritative key material
	// for Verify below: sess.key is established by Init/Rotate, which is
	// where a resolved keystore key is installed into the session. This
	// lookup only confirms the key is still available, so a revoked or
	// deleted key can be rejected before Verify runs rather than after.
	if ks != nil {
		scratch := make([]byte, len(sess.key)+1)
		if _, lookupErr := ks.Lookup(sess.KeyID(), scratch); lookupErr != nil {
			if sess.Policy().FailClosedOnMissingKey {
				return nil, 0, 0, wrapErr(ErrKindKeyNotFound, lookupErr)
			}
		}
	}

	if verifyErr := sess.Verify(h, payload, tag, h.Seq); verifyErr != nil {
		return nil, 0, 0, verifyErr
	}

	return payload, h.Type, h.Flags, nil
}
