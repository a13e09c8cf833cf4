package linkframe

import (
	"bytes"
	"errors"
	"testing"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x0B}, 32)
}

func TestSessionInitIsIdempotent(t *testing.T) {
	s := NewSession(1, testKey(), 0, 5, DefaultPolicy())
	if s.State() != SessionReady {
		t.Fatalf("expected Ready after NewSession, got %v", s.State())
	}
	if s.NextSeq() != 5 {
		t.Fatalf("expected NextSeq()=5, got %d", s.NextSeq())
	}

	s.Init(1, testKey(), 0, 5, DefaultPolicy())
	if s.State() != SessionReady || s.NextSeq() != 5 {
		t.Fatalf("Init was not idempotent: state=%v nextSeq=%d", s.State(), s.NextSeq())
	}
}

func TestSessionSignAdvancesSequence(t *testing.T) {
	s := NewSession(1, testKey(), 0, 5, DefaultPolicy())
	h := Header{Version: ProtocolVersion, Type: 0x01, Flags: flagAuthPresent}

	_, seqUsed, err := s.Sign(h, []byte("HELLO"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if seqUsed != 5 {
		t.Fatalf("expected seqUsed=5, got %d", seqUsed)
	}
	if s.NextSeq() != 6 {
		t.Fatalf("expected NextSeq()=6 after Sign, got %d", s.NextSeq())
	}

	_, seqUsed2, err := s.Sign(h, []byte("HELLO2"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if seqUsed2 != 6 {
		t.Fatalf("expected second seqUsed=6, got %d", seqUsed2)
	}
}

func TestSessionVerifyAcceptsThenRejectsReplay(t *testing.T) {
	sender := NewSession(1, testKey(), 0, 5, DefaultPolicy())
	receiver := NewSession(1, testKey(), 0, 5, DefaultPolicy())

	h := Header{Version: ProtocolVersion, Type: 0x01, Flags: flagAuthPresent}
	payload := []byte("HELLO")
	tag, seqUsed, err := sender.Sign(h, payload)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := receiver.Verify(h, payload, tag[:], seqUsed); err != nil {
		t.Fatalf("first Verify: %v", err)
	}
	if receiver.LastAcceptedSeq() != seqUsed {
		t.Fatalf("expected LastAcceptedSeq()=%d, got %d", seqUsed, receiver.LastAcceptedSeq())
	}

	err = receiver.Verify(h, payload, tag[:], seqUsed)
	if !errors.Is(err, ErrReplay) {
		t.Fatalf("expected replay on second Verify, got %v", err)
	}
	if receiver.LastAcceptedSeq() != seqUsed {
		t.Fatalf("replay rejection must not mutate last accepted seq, got %d", receiver.LastAcceptedSeq())
	}
}

func TestSessionVerifyRejectsTamperedTag(t *testing.T) {
	sender := NewSession(1, testKey(), 0, 5, DefaultPolicy())
	receiver := NewSession(1, testKey(), 0, 5, DefaultPolicy())

	h := Header{Version: ProtocolVersion, Type: 0x01, Flags: flagAuthPresent}
	payload := []byte("HELLO")
	tag, seqUsed, err := sender.Sign(h, payload)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	tag[0] ^= 0xFF

	err = receiver.Verify(h, payload, tag[:], seqUsed)
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected auth_failed, got %v", err)
	}
	if receiver.LastAcceptedSeq() != 0 {
		t.Fatalf("failed verify must not mutate last accepted seq, got %d", receiver.LastAcceptedSeq())
	}
}

func TestSessionSignAtWrapBoundaryFails(t *testing.T) {
	s := NewSession(1, testKey(), 0, 0xFFFFFFFF, DefaultPolicy())
	h := Header{Version: ProtocolVersion, Type: 0x01, Flags: flagAuthPresent}

	_, _, err := s.Sign(h, []byte("X"))
	if !errors.Is(err, ErrSequenceWrap) {
		t.Fatalf("expected sequence_wrap at boundary, got %v", err)
	}
	if s.State() != SessionWrapped {
		t.Fatalf("expected Wrapped state, got %v", s.State())
	}

	_, _, err = s.Sign(h, []byte("Y"))
	if !errors.Is(err, ErrSequenceWrap) {
		t.Fatalf("expected sequence_wrap to persist until rotate, got %v", err)
	}
}

func TestSessionRotateReturnsToReady(t *testing.T) {
	s := NewSession(1, testKey(), 0, 0xFFFFFFFF, DefaultPolicy())
	h := Header{Version: ProtocolVersion, Type: 0x01, Flags: flagAuthPresent}
	if _, _, err := s.Sign(h, []byte("X")); !errors.Is(err, ErrSequenceWrap) {
		t.Fatalf("expected sequence_wrap, got %v", err)
	}

	s.Rotate(2, bytes.Repeat([]byte{0x0C}, 32), 1, 0)
	if s.State() != SessionReady {
		t.Fatalf("expected Ready after Rotate, got %v", s.State())
	}
	if s.KeyID() != 2 || s.NextSeq() != 0 {
		t.Fatalf("Rotate did not reset identity: keyID=%d nextSeq=%d", s.KeyID(), s.NextSeq())
	}

	if _, _, err := s.Sign(h, []byte("Y")); err != nil {
		t.Fatalf("Sign after rotate: %v", err)
	}
}

func TestSessionDestroyZeroizesAndBlocksUse(t *testing.T) {
	s := NewSession(1, testKey(), 0, 5, DefaultPolicy())
	s.Destroy()
	if s.State() != SessionUninitialized {
		t.Fatalf("expected Uninitialized after Destroy, got %v", s.State())
	}

	h := Header{Version: ProtocolVersion, Type: 0x01, Flags: flagAuthPresent}
	if _, _, err := s.Sign(h, []byte("X")); err == nil {
		t.Fatalf("expected Sign to fail on destroyed session")
	}
}
