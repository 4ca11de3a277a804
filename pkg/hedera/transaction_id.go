package hedera

import (
	"fmt"
	"sync/atomic"
	"time"
)

// TransactionID uniquely identifies a transaction by its fee-paying account
// and the instant from which its validity window starts. Two transactions
// from the same payer must never share a valid-start instant; NewTransactionID
// guarantees this within a process.
type TransactionID struct {
	AccountID  AccountID
	ValidStart time.Time
	Scheduled  bool
	Nonce      int32
}

// lastValidStart is the most recent valid-start (unix nanos) handed out by
// NewTransactionID. New identifiers always read strictly after it, so two
// calls in the same nanosecond (or a wall-clock step backwards) cannot
// produce colliding identifiers.
var lastValidStart atomic.Int64

// NewTransactionID generates a fresh identifier for the given payer using a
// strictly monotonic per-process timestamp.
func NewTransactionID(payer AccountID) TransactionID {
	for {
		now := time.Now().UnixNano()
		last := lastValidStart.Load()
		if now <= last {
			now = last + 1
		}
		if lastValidStart.CompareAndSwap(last, now) {
			return TransactionID{
				AccountID:  payer,
				ValidStart: time.Unix(0, now).UTC(),
			}
		}
	}
}

// WithValidStart returns a copy of the identifier with the given valid-start.
// Used by chunked submissions, which derive each chunk's identifier from the
// first chunk's valid-start plus a fixed nanosecond offset.
func (id TransactionID) WithValidStart(t time.Time) TransactionID {
	id.ValidStart = t.UTC()
	return id
}

// IsZero reports whether the identifier is unset.
func (id TransactionID) IsZero() bool {
	return id.AccountID.IsZero() && id.ValidStart.IsZero()
}

// String renders the identifier as "payer@seconds.nanos", the form used by
// network tooling.
func (id TransactionID) String() string {
	s := fmt.Sprintf("%s@%d.%09d", id.AccountID, id.ValidStart.Unix(), id.ValidStart.Nanosecond())
	if id.Scheduled {
		s += "?scheduled"
	}
	return s
}
