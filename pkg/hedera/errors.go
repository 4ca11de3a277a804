package hedera

import (
	"errors"
	"fmt"
)

// ErrFrozen is returned by every transaction setter once the body bytes have
// been serialized.
var ErrFrozen = errors.New("transaction is immutable; it has been frozen")

// ErrAlreadySigned is returned when a transaction is signed a second time
// with a public key that already has an entry in the signature map.
var ErrAlreadySigned = errors.New("transaction already signed with this key")

// ErrNoOperator is returned when an operation requires operator credentials
// and none are configured on the client.
var ErrNoOperator = errors.New("client operator is not set")

// PrecheckError reports a terminal, non-retryable status in a node's
// immediate response. Retryable codes never surface as a PrecheckError
// unless the attempt budget is exhausted.
type PrecheckError struct {
	Status        Status
	TransactionID TransactionID
}

func (e *PrecheckError) Error() string {
	if e.TransactionID.IsZero() {
		return fmt.Sprintf("precheck failed with status %s", e.Status)
	}
	return fmt.Sprintf("transaction %s precheck failed with status %s", e.TransactionID, e.Status)
}

// IsPrecheck checks whether an error is a PrecheckError and returns it.
func IsPrecheck(err error) (*PrecheckError, bool) {
	var p *PrecheckError
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

// ExpiredError reports that the transaction's valid-start window elapsed
// before a node accepted it. The remedy is resubmission with a fresh
// transaction identifier, not a retry of the same one.
type ExpiredError struct {
	TransactionID TransactionID
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("transaction %s expired before it was accepted", e.TransactionID)
}

// IsExpired checks whether an error is an ExpiredError and returns it.
func IsExpired(err error) (*ExpiredError, bool) {
	var x *ExpiredError
	if errors.As(err, &x) {
		return x, true
	}
	return nil, false
}

// MaxAttemptsError reports that every attempt in the budget failed with a
// transient condition. LastErr is the failure observed on the final attempt.
type MaxAttemptsError struct {
	Attempts int
	LastErr  error
}

func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf("exceeded maximum attempts (%d), last failure: %v", e.Attempts, e.LastErr)
}

func (e *MaxAttemptsError) Unwrap() error { return e.LastErr }

// IsMaxAttempts checks whether an error is a MaxAttemptsError and returns it.
func IsMaxAttempts(err error) (*MaxAttemptsError, bool) {
	var m *MaxAttemptsError
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}

// ReceiptStatusError reports that a transaction was accepted at precheck but
// consensus processing finished with a failure status.
type ReceiptStatusError struct {
	Status        Status
	TransactionID TransactionID
}

func (e *ReceiptStatusError) Error() string {
	return fmt.Sprintf("transaction %s failed with receipt status %s", e.TransactionID, e.Status)
}

// IsReceiptStatus checks whether an error is a ReceiptStatusError and returns it.
func IsReceiptStatus(err error) (*ReceiptStatusError, bool) {
	var r *ReceiptStatusError
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// ChunkBudgetError reports a payload that would need more chunks than the
// configured maximum. It is raised before any network call is made.
type ChunkBudgetError struct {
	Required  int
	MaxChunks int
}

func (e *ChunkBudgetError) Error() string {
	return fmt.Sprintf("payload requires %d chunks, exceeding the maximum of %d", e.Required, e.MaxChunks)
}

// ChunkError reports the failure of one chunk of a chunked submission after
// Index preceding chunks were already accepted. Accepted chunks are not
// rolled back; the network has no multi-transaction atomicity primitive.
type ChunkError struct {
	Index int
	Total int
	Cause error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d of %d failed: %v", e.Index+1, e.Total, e.Cause)
}

func (e *ChunkError) Unwrap() error { return e.Cause }

// ValidationError reports a required field missing on a request builder.
// It is raised synchronously at freeze/build time, before any network cost.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

// ErrFieldRequired builds the ValidationError used by request builders when a
// mandatory field was never set.
func ErrFieldRequired(field string) error {
	return &ValidationError{Field: field, Reason: "must be set"}
}
