package sdk

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// TransactionResponse is the acknowledgement of an accepted submission. It
// identifies the transaction for later lookups and carries the SHA-384 hash
// of the exact signed bytes the node received.
type TransactionResponse struct {
	TransactionID hedera.TransactionID
	NodeID        hedera.AccountID
	Hash          []byte

	// ValidateStatus makes GetReceipt return a ReceiptStatusError when the
	// final status is not SUCCESS. On by default.
	ValidateStatus bool
}

// SetValidateStatus controls whether GetReceipt treats a non-SUCCESS final
// status as an error.
func (r *TransactionResponse) SetValidateStatus(v bool) *TransactionResponse {
	r.ValidateStatus = v
	return r
}

// GetReceipt polls the network until the transaction's receipt is available
// or the client's poll budget runs out. A receipt that is not yet known
// (UNKNOWN or RECEIPT_NOT_FOUND) is transient; any other status is final.
//
// When ValidateStatus is on and the final status is not SUCCESS, the receipt
// is returned together with a ReceiptStatusError so callers can still
// inspect it.
func (r *TransactionResponse) GetReceipt(ctx context.Context, c *client.Client) (*TransactionReceipt, error) {
	limits := c.Limits()

	var receipt *TransactionReceipt
	err := retry.Do(ctx, pollBackoff(limits.ReceiptPollDelay, limits.ReceiptPollAttempts), func(ctx context.Context) error {
		q := NewTransactionGetReceiptQuery()
		if err := q.SetTransactionID(r.TransactionID); err != nil {
			return err
		}
		rec, err := q.Execute(ctx, c)
		if err != nil {
			if p, ok := hedera.IsPrecheck(err); ok && receiptPending(p.Status) {
				return retry.RetryableError(err)
			}
			return err
		}
		if receiptPending(rec.Status) {
			return retry.RetryableError(fmt.Errorf("receipt for %s not yet available: %s", r.TransactionID, rec.Status))
		}
		receipt = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	if r.ValidateStatus && receipt.Status != hedera.StatusSuccess {
		return receipt, &hedera.ReceiptStatusError{Status: receipt.Status, TransactionID: r.TransactionID}
	}
	return receipt, nil
}

func receiptPending(s hedera.Status) bool {
	return s == hedera.StatusUnknown || s == hedera.StatusReceiptNotFound
}

// pollBackoff is a fixed-delay schedule bounded by the poll attempt budget.
func pollBackoff(delay time.Duration, attempts int) retry.Backoff {
	var b retry.Backoff
	if delay <= 0 {
		b = retry.BackoffFunc(func() (time.Duration, bool) { return 0, false })
	} else {
		b = retry.NewConstant(delay)
	}
	if attempts < 1 {
		attempts = 1
	}
	return retry.WithMaxRetries(uint64(attempts-1), b)
}
