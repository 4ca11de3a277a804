package sdk

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// TopicMessage is one message delivered by a mirror-node subscription.
type TopicMessage struct {
	ConsensusTimestamp time.Time
	SequenceNumber     uint64
	RunningHash        []byte
	Contents           []byte
}

// SubscriptionHandle controls a running topic subscription.
type SubscriptionHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Unsubscribe stops the subscription. It returns immediately; Done is closed
// once the background goroutine has fully wound down.
func (h *SubscriptionHandle) Unsubscribe() { h.cancel() }

// Done is closed when the subscription has stopped for any reason.
func (h *SubscriptionHandle) Done() <-chan struct{} { return h.done }

// TopicMessageQuery subscribes to a consensus topic's message stream on a
// mirror node. Dropped streams are resubscribed automatically with
// exponential backoff, up to a bounded number of consecutive failures.
type TopicMessageQuery struct {
	topicID     *hedera.TopicID
	startTime   *time.Time
	endTime     *time.Time
	limit       uint64
	maxAttempts int
}

// NewTopicMessageQuery creates an empty subscription query with the default
// resubscribe budget.
func NewTopicMessageQuery() *TopicMessageQuery {
	return &TopicMessageQuery{maxAttempts: 10}
}

// SetTopicID sets the topic to subscribe to. Required.
func (q *TopicMessageQuery) SetTopicID(id hedera.TopicID) *TopicMessageQuery {
	q.topicID = &id
	return q
}

// SetStartTime sets the consensus timestamp to replay from. Unset means now.
func (q *TopicMessageQuery) SetStartTime(t time.Time) *TopicMessageQuery {
	q.startTime = &t
	return q
}

// SetEndTime stops the stream once consensus passes the given timestamp.
func (q *TopicMessageQuery) SetEndTime(t time.Time) *TopicMessageQuery {
	q.endTime = &t
	return q
}

// SetLimit caps how many messages the mirror node delivers; zero means
// unlimited.
func (q *TopicMessageQuery) SetLimit(n uint64) *TopicMessageQuery {
	q.limit = n
	return q
}

// SetMaxAttempts overrides the resubscribe budget.
func (q *TopicMessageQuery) SetMaxAttempts(n int) *TopicMessageQuery {
	q.maxAttempts = n
	return q
}

// Subscribe opens the stream against the client's mirror node and delivers
// messages to onMessage from a background goroutine. onError, when not nil,
// receives the terminal error if the stream fails past the resubscribe
// budget; a clean end of stream and an Unsubscribe are not errors.
func (q *TopicMessageQuery) Subscribe(c *client.Client, onMessage func(TopicMessage), onError func(error)) (*SubscriptionHandle, error) {
	if q.topicID == nil {
		return nil, hedera.ErrFieldRequired("topicID")
	}
	if onMessage == nil {
		return nil, hedera.ErrFieldRequired("onMessage")
	}
	conn, err := c.Mirror()
	if err != nil {
		return nil, err
	}

	req := hapi.NewMessage("ConsensusTopicQuery")
	hapi.SetMessage(req, "topicID", hapi.TopicIDMessage(*q.topicID))
	if q.startTime != nil {
		hapi.SetMessage(req, "consensusStartTime", hapi.TimestampMessage(*q.startTime))
	}
	if q.endTime != nil {
		hapi.SetMessage(req, "consensusEndTime", hapi.TimestampMessage(*q.endTime))
	}
	if q.limit > 0 {
		hapi.SetUint64(req, "limit", q.limit)
	}

	ctx, cancel := context.WithCancel(context.Background())
	handle := &SubscriptionHandle{cancel: cancel, done: make(chan struct{})}
	topicID := *q.topicID

	go func() {
		defer close(handle.done)
		defer cancel()
		err := retry.Do(ctx, resubscribeBackoff(q.maxAttempts), func(ctx context.Context) error {
			stream, outDesc, err := hapi.OpenServerStream(ctx, conn, "subscribeTopic", req)
			if err != nil {
				zap.L().Debug("topic subscription attempt failed", zap.Stringer("topic", topicID), zap.Error(err))
				return retry.RetryableError(err)
			}
			for {
				out := dynamicpb.NewMessage(outDesc)
				if err := stream.RecvMsg(out); err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					if ctx.Err() != nil {
						return ctx.Err()
					}
					zap.L().Debug("topic stream dropped", zap.Stringer("topic", topicID), zap.Error(err))
					return retry.RetryableError(err)
				}
				onMessage(topicMessageFrom(out.ProtoReflect()))
			}
		})
		if err != nil && ctx.Err() == nil && onError != nil {
			onError(err)
		}
	}()
	return handle, nil
}

func topicMessageFrom(m protoreflect.Message) TopicMessage {
	msg := TopicMessage{
		SequenceNumber: hapi.GetUint64(m, "sequenceNumber"),
		RunningHash:    hapi.GetBytes(m, "runningHash"),
		Contents:       hapi.GetBytes(m, "message"),
	}
	if hapi.Has(m, "consensusTimestamp") {
		msg.ConsensusTimestamp = hapi.TimestampFromMessage(hapi.GetMessage(m, "consensusTimestamp"))
	}
	return msg
}

func resubscribeBackoff(maxAttempts int) retry.Backoff {
	b := retry.WithCappedDuration(8*time.Second, retry.NewExponential(250*time.Millisecond))
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return retry.WithMaxRetries(uint64(maxAttempts-1), b)
}
