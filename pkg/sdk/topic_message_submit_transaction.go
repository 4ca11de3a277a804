package sdk

import (
	"context"

	"google.golang.org/protobuf/proto"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// TopicMessageSubmitTransaction publishes a message to a consensus topic.
// Messages larger than the chunk size are split into an ordered sequence of
// transactions that share a correlating initial transaction ID; each chunk's
// body records its position and the sequence total so consumers can
// reassemble the payload.
type TopicMessageSubmitTransaction struct {
	topicID *hedera.TopicID
	message []byte
	limits  chunkLimits
}

// NewTopicMessageSubmitTransaction creates an empty submission with the
// default chunk size and budget.
func NewTopicMessageSubmitTransaction() *TopicMessageSubmitTransaction {
	return &TopicMessageSubmitTransaction{limits: defaultChunkLimits()}
}

// SetTopicID sets the destination topic. Required.
func (t *TopicMessageSubmitTransaction) SetTopicID(id hedera.TopicID) *TopicMessageSubmitTransaction {
	t.topicID = &id
	return t
}

// SetMessage sets the payload to publish. Required.
func (t *TopicMessageSubmitTransaction) SetMessage(message []byte) *TopicMessageSubmitTransaction {
	t.message = message
	return t
}

// SetChunkSize overrides the per-chunk payload size.
func (t *TopicMessageSubmitTransaction) SetChunkSize(size int) *TopicMessageSubmitTransaction {
	t.limits.chunkSize = size
	return t
}

// SetMaxChunks overrides the chunk budget.
func (t *TopicMessageSubmitTransaction) SetMaxChunks(n int) *TopicMessageSubmitTransaction {
	t.limits.maxChunks = n
	return t
}

// RequiredChunks reports how many transactions the current payload will
// produce under the current chunk size.
func (t *TopicMessageSubmitTransaction) RequiredChunks() int {
	return t.limits.requiredChunks(len(t.message))
}

// Execute submits every chunk in order, one response per chunk. The chunk
// budget is enforced before anything is sent; a mid-sequence failure returns
// the responses of the chunks that made it through together with a
// ChunkError naming the one that did not.
func (t *TopicMessageSubmitTransaction) Execute(ctx context.Context, c *client.Client) ([]*TransactionResponse, error) {
	if t.topicID == nil {
		return nil, hedera.ErrFieldRequired("topicID")
	}
	if len(t.message) == 0 {
		return nil, hedera.ErrFieldRequired("message")
	}
	topicID := *t.topicID
	return executeChunks(ctx, c, t.message, t.limits, func(chunk []byte, index, total int, initial hedera.TransactionID) bodyBuilder {
		return &topicMessageChunk{topicID: topicID, payload: chunk, index: index, total: total, initial: initial}
	})
}

// topicMessageChunk is the body builder for one chunk of a submission.
type topicMessageChunk struct {
	topicID hedera.TopicID
	payload []byte
	index   int
	total   int
	initial hedera.TransactionID
}

func (tc *topicMessageChunk) data() (string, proto.Message, error) {
	body := hapi.NewMessage("ConsensusSubmitMessageTransactionBody")
	hapi.SetMessage(body, "topicID", hapi.TopicIDMessage(tc.topicID))
	hapi.SetBytes(body, "message", tc.payload)

	info := hapi.NewMessage("ConsensusMessageChunkInfo")
	hapi.SetMessage(info, "initialTransactionID", hapi.TransactionIDMessage(tc.initial))
	hapi.SetInt32(info, "total", int32(tc.total))
	hapi.SetInt32(info, "number", int32(tc.index+1))
	hapi.SetMessage(body, "chunkInfo", info)

	return "consensusSubmitMessage", body, nil
}

func (tc *topicMessageChunk) methodName() string { return "submitMessage" }
