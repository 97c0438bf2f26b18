package governance

import "errors"

var (
	ErrLengthMismatch = errors.New("length mismatch")
	ErrEmptyProposal  = errors.New("empty proposal")
	ErrInvalidValue   = errors.New("value is not a uint256")
	ErrInvalidSupport = errors.New("invalid support value")

	ErrAlreadyMember     = errors.New("already a member")
	ErrWrongFee          = errors.New("wrong membership fee")
	ErrPaymentFailed     = errors.New("fee payment failed")
	ErrNotMember         = errors.New("not a member")
	ErrUnknownProposal   = errors.New("unknown proposal")
	ErrProposalNotActive = errors.New("proposal not active")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrAlreadyExecuted   = errors.New("already executed")
	ErrNotSucceeded      = errors.New("proposal not succeeded")

	ErrMalformedSignature = errors.New("malformed signature")
	ErrCallReverted       = errors.New("call reverted")
	ErrReentrantCall      = errors.New("reentrant call")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrLengthMismatch, "length_mismatch"},
	{ErrEmptyProposal, "empty_proposal"},
	{ErrInvalidValue, "invalid_value"},
	{ErrInvalidSupport, "invalid_support"},
	{ErrAlreadyMember, "already_member"},
	{ErrWrongFee, "wrong_fee"},
	{ErrPaymentFailed, "payment_failed"},
	{ErrNotMember, "not_member"},
	{ErrUnknownProposal, "unknown_proposal"},
	{ErrProposalNotActive, "proposal_not_active"},
	// ErrInvalidSignature wraps ErrMalformedSignature in CastVoteBySig, so it goes first.
	{ErrInvalidSignature, "invalid_signature"},
	{ErrMalformedSignature, "malformed_signature"},
	{ErrAlreadyVoted, "already_voted"},
	{ErrAlreadyExecuted, "already_executed"},
	{ErrNotSucceeded, "not_succeeded"},
	{ErrCallReverted, "call_reverted"},
	{ErrReentrantCall, "reentrant_call"},
}

// ErrorCode returns the stable identifier of a governance error, or "internal"
// for errors raised by the store, the clock or the ledger.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}

// IsRejection reports whether err is one of the named governance conditions as
// opposed to an infrastructure failure.
func IsRejection(err error) bool {
	return err != nil && ErrorCode(err) != "internal"
}
