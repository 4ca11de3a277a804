package sdk

import (
	"errors"
	"sync"
	"testing"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/shamank/hiero-sdk-go/internal/testutil/mocknode"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

func topicResponse(seq uint64, contents string) proto.Message {
	msg := hapi.NewMessage("ConsensusTopicResponse")
	hapi.SetMessage(msg, "consensusTimestamp", hapi.TimestampMessage(time.Unix(1700000000, int64(seq))))
	hapi.SetBytes(msg, "message", []byte(contents))
	hapi.SetBytes(msg, "runningHash", []byte{1, 2, 3})
	hapi.SetUint64(msg, "sequenceNumber", seq)
	return msg
}

func TestTopicSubscriptionDeliversMessages(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		t.Errorf("unexpected unary call %s", method)
		return nil, errors.New("unexpected")
	})
	defer srv.Stop()
	srv.SetStreamHandler(func(method string, req *dynamicpb.Message) ([]proto.Message, error) {
		if method != "subscribeTopic" {
			t.Errorf("unexpected stream method %s", method)
		}
		if got := hapi.TopicIDFromMessage(hapi.GetMessage(req.ProtoReflect(), "topicID")); got != testTopicID {
			t.Errorf("subscribed to wrong topic %v", got)
		}
		return []proto.Message{
			topicResponse(1, "first"),
			topicResponse(2, "second"),
		}, nil
	})

	c := newMockClient(t, srv, 1)

	var mu sync.Mutex
	var got []TopicMessage
	handle, err := NewTopicMessageQuery().
		SetTopicID(testTopicID).
		Subscribe(c, func(msg TopicMessage) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, msg)
		}, func(err error) {
			t.Errorf("unexpected subscription error: %v", err)
		})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("subscription did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if string(got[0].Contents) != "first" || got[0].SequenceNumber != 1 {
		t.Fatalf("unexpected first message %+v", got[0])
	}
	if string(got[1].Contents) != "second" || got[1].SequenceNumber != 2 {
		t.Fatalf("unexpected second message %+v", got[1])
	}
}

func TestTopicSubscriptionResubscribesAfterDrop(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		return nil, errors.New("unexpected")
	})
	defer srv.Stop()
	srv.SetStreamHandler(func(method string, req *dynamicpb.Message) ([]proto.Message, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return nil, errors.New("stream reset")
		}
		return []proto.Message{topicResponse(7, "after drop")}, nil
	})

	c := newMockClient(t, srv, 1)

	var got []TopicMessage
	handle, err := NewTopicMessageQuery().
		SetTopicID(testTopicID).
		Subscribe(c, func(msg TopicMessage) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, msg)
		}, func(err error) {
			t.Errorf("recovered drop must not surface as an error, got %v", err)
		})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("subscription did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	if attempts != 2 {
		t.Fatalf("expected a resubscribe after the drop, saw %d attempts", attempts)
	}
	if len(got) != 1 || string(got[0].Contents) != "after drop" {
		t.Fatalf("expected the message from the second stream, got %+v", got)
	}
}

func TestTopicSubscriptionExhaustedBudgetReportsError(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		return nil, errors.New("unexpected")
	})
	defer srv.Stop()
	srv.SetStreamHandler(func(method string, req *dynamicpb.Message) ([]proto.Message, error) {
		return nil, errors.New("stream reset")
	})

	c := newMockClient(t, srv, 1)

	errs := make(chan error, 1)
	handle, err := NewTopicMessageQuery().
		SetTopicID(testTopicID).
		SetMaxAttempts(2).
		Subscribe(c, func(TopicMessage) {}, func(err error) { errs <- err })
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	select {
	case err := <-errs:
		if err == nil {
			t.Fatal("expected a terminal error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("budget exhaustion did not surface")
	}
	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("handle did not wind down after the terminal error")
	}
	// The subscription released its resources on exit; an Unsubscribe after
	// the fact must be a harmless no-op.
	handle.Unsubscribe()
}

func TestTopicSubscriptionRequiresTopic(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		return nil, errors.New("unexpected")
	})
	defer srv.Stop()
	c := newMockClient(t, srv, 1)

	_, err := NewTopicMessageQuery().Subscribe(c, func(TopicMessage) {}, nil)
	var v *hedera.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTopicSubscriptionUnsubscribe(t *testing.T) {
	block := make(chan struct{})
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		return nil, errors.New("unexpected")
	})
	defer srv.Stop()
	srv.SetStreamHandler(func(method string, req *dynamicpb.Message) ([]proto.Message, error) {
		<-block // hold the stream open until the test ends
		return nil, nil
	})
	defer close(block)

	c := newMockClient(t, srv, 1)

	handle, err := NewTopicMessageQuery().
		SetTopicID(testTopicID).
		Subscribe(c, func(TopicMessage) {}, func(err error) {
			t.Errorf("cancellation must not surface as an error, got %v", err)
		})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	handle.Unsubscribe()
	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("unsubscribe did not stop the subscription")
	}
}
