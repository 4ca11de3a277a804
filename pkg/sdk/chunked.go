package sdk

import (
	"context"
	"time"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

const (
	// defaultChunkSize is the per-chunk payload size in bytes.
	defaultChunkSize = 1024
	// defaultMaxChunks bounds how many chunks one submission may produce.
	defaultMaxChunks = 20
)

// chunkLimits holds the chunking knobs shared by chunk-capable transaction
// types.
type chunkLimits struct {
	chunkSize int
	maxChunks int
}

func defaultChunkLimits() chunkLimits {
	return chunkLimits{chunkSize: defaultChunkSize, maxChunks: defaultMaxChunks}
}

func (l chunkLimits) requiredChunks(payloadLen int) int {
	if payloadLen == 0 {
		return 1
	}
	return (payloadLen + l.chunkSize - 1) / l.chunkSize
}

// executeChunks splits the payload and submits one transaction per chunk,
// strictly in order, waiting for each chunk's receipt before sending the
// next. Chunk k's transaction ID is the initial ID with its valid start
// advanced by k nanoseconds, so all chunks of one submission correlate and
// chunk IDs stay unique and ordered.
//
// The chunk budget is checked before anything reaches the network. A failure
// mid-sequence surfaces as a ChunkError; accepted chunks stay accepted.
func executeChunks(
	ctx context.Context,
	c *client.Client,
	payload []byte,
	limits chunkLimits,
	build func(chunk []byte, index, total int, initial hedera.TransactionID) bodyBuilder,
) ([]*TransactionResponse, error) {
	total := limits.requiredChunks(len(payload))
	if total > limits.maxChunks {
		return nil, &hedera.ChunkBudgetError{Required: total, MaxChunks: limits.maxChunks}
	}

	initial, err := c.GenerateTransactionID()
	if err != nil {
		return nil, err
	}
	node := c.Network().Current().AccountID

	responses := make([]*TransactionResponse, 0, total)
	for k := 0; k < total; k++ {
		start := k * limits.chunkSize
		end := start + limits.chunkSize
		if end > len(payload) {
			end = len(payload)
		}

		tx := newTransaction(build(payload[start:end], k, total, initial))
		id := initial.WithValidStart(initial.ValidStart.Add(time.Duration(k) * time.Nanosecond))
		tx.transactionID = &id
		tx.nodeAccountID = &node

		resp, err := tx.execute(ctx, c)
		if err != nil {
			return responses, &hedera.ChunkError{Index: k, Total: total, Cause: err}
		}
		if _, err := resp.GetReceipt(ctx, c); err != nil {
			return responses, &hedera.ChunkError{Index: k, Total: total, Cause: err}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
