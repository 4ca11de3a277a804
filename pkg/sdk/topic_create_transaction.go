package sdk

import (
	"context"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/crypto"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
)

// TopicCreateTransaction creates a consensus topic. Without a submit key the
// topic is open: anyone may submit messages. The receipt carries the new
// topic's ID.
type TopicCreateTransaction struct {
	Transaction

	topicMemo string
	adminKey  *crypto.PublicKey
	submitKey *crypto.PublicKey
	autoRenew time.Duration
}

// NewTopicCreateTransaction creates a topic-create builder with the default
// auto-renew period.
func NewTopicCreateTransaction() *TopicCreateTransaction {
	t := &TopicCreateTransaction{autoRenew: defaultAutoRenewPeriod}
	t.Transaction = newTransaction(t)
	return t
}

// SetTopicMemo attaches a memo to the topic itself.
func (t *TopicCreateTransaction) SetTopicMemo(memo string) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.topicMemo = memo
	return nil
}

// SetAdminKey sets the key allowed to update or delete the topic.
func (t *TopicCreateTransaction) SetAdminKey(key crypto.PublicKey) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.adminKey = &key
	return nil
}

// SetSubmitKey restricts message submission to holders of the key.
func (t *TopicCreateTransaction) SetSubmitKey(key crypto.PublicKey) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.submitKey = &key
	return nil
}

// SetAutoRenewPeriod overrides the topic's auto-renew period.
func (t *TopicCreateTransaction) SetAutoRenewPeriod(d time.Duration) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.autoRenew = d
	return nil
}

// Execute submits the topic creation.
func (t *TopicCreateTransaction) Execute(ctx context.Context, c *client.Client) (*TransactionResponse, error) {
	return t.execute(ctx, c)
}

func (t *TopicCreateTransaction) data() (string, proto.Message, error) {
	body := hapi.NewMessage("ConsensusCreateTopicTransactionBody")
	if t.topicMemo != "" {
		hapi.SetString(body, "memo", t.topicMemo)
	}
	if t.adminKey != nil {
		hapi.SetMessage(body, "adminKey", hapi.KeyMessage(*t.adminKey))
	}
	if t.submitKey != nil {
		hapi.SetMessage(body, "submitKey", hapi.KeyMessage(*t.submitKey))
	}
	hapi.SetMessage(body, "autoRenewPeriod", hapi.DurationMessage(t.autoRenew))
	return "consensusCreateTopic", body, nil
}

func (t *TopicCreateTransaction) methodName() string { return "createTopic" }
