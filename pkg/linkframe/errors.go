package linkframe

import "fmt"

// ErrorKind classifies every failure mode the codec and session can
// return (spec §7). NeedMoreData is a progress signal, not an error.
type ErrorKind int

const (
	_ ErrorKind = iota
	ErrKindBufferTooSmall
	ErrKindPayloadTooLarge
	ErrKindMalformedHeader
	ErrKindUnsupportedVersion
	ErrKindCOBSDecode
	ErrKindCRCMismatch
	ErrKindAuthFailed
	ErrKindReplay
	ErrKindUnauthenticatedCommand
	ErrKindKeyNotFound
	ErrKindSequenceWrap
	ErrKindAuthRequired
	ErrKindNeedMoreData
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindBufferTooSmall:
		return "buffer_too_small"
	case ErrKindPayloadTooLarge:
		return "payload_too_large"
	case ErrKindMalformedHeader:
		return "malformed_header"
	case ErrKindUnsupportedVersion:
		return "unsupported_version"
	case ErrKindCOBSDecode:
		return "cobs_decode"
	case ErrKindCRCMismatch:
		return "crc_mismatch"
	case ErrKindAuthFailed:
		return "auth_failed"
	case ErrKindReplay:
		return "replay"
	case ErrKindUnauthenticatedCommand:
		return "unauthenticated_command"
	case ErrKindKeyNotFound:
		return "key_not_found"
	case ErrKindSequenceWrap:
		return "sequence_wrap"
	case ErrKindAuthRequired:
		return "auth_required"
	case ErrKindNeedMoreData:
		return "need_more_data"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// CodecError is the error type returned by every fallible operation in
// this package. Callers that need to branch on the failure mode should
// use errors.As and inspect Kind, not compare error strings.
type CodecError struct {
	Kind  ErrorKind
	Cause error // optional underlying error, e.g. from the keystore
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("linkframe: %s: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("linkframe: %s", e.Kind)
}

func (e *CodecError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *CodecError with the same Kind,
// so callers can do errors.Is(err, linkframe.ErrReplay) etc.
func (e *CodecError) Is(target error) bool {
	t, ok := target.(*CodecError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(kind ErrorKind) error {
	return &CodecError{Kind: kind}
}

func wrapErr(kind ErrorKind, cause error) error {
	return &CodecError{Kind: kind, Cause: cause}
}

// Sentinel values for errors.Is comparisons against a known kind, e.g.:
//
//	if errors.Is(err, linkframe.ErrReplay) { ... }
var (
	ErrBufferTooSmall     = &CodecError{Kind: ErrKindBufferTooSmall}
	ErrPayloadTooLarge    = &CodecError{Kind: ErrKindPayloadTooLarge}
	ErrMalformedHeader    = &CodecError{Kind: ErrKindMalformedHeader}
	ErrUnsupportedVersion = &CodecError{Kind: ErrKindUnsupportedVersion}
	ErrCOBSDecode         = &CodecError{Kind: ErrKindCOBSDecode}
	ErrCRCMismatch        = &CodecError{Kind: ErrKindCRCMismatch}
	ErrAuthFailed         = &CodecError{Kind: ErrKindAuthFailed}
	ErrReplay             = &CodecError{Kind: ErrKindReplay}
	ErrUnauthenticatedCmd = &CodecError{Kind: ErrKindUnauthenticatedCommand}
	ErrKeyNotFoundFrame   = &CodecError{Kind: ErrKindKeyNotFound}
	ErrSequenceWrap       = &CodecError{Kind: ErrKindSequenceWrap}
	ErrAuthRequired       = &CodecError{Kind: ErrKindAuthRequired}
	ErrNeedMoreData       = &CodecError{Kind: ErrKindNeedMoreData}
)
