package sdk

import (
	"bytes"
	"context"
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

var testTopicID = hedera.NewTopicID(0, 0, 333)

func TestRequiredChunksArithmetic(t *testing.T) {
	tx := NewTopicMessageSubmitTransaction().SetChunkSize(100)

	cases := []struct {
		payloadLen int
		want       int
	}{
		{1, 1},
		{99, 1},
		{100, 1},
		{101, 2},
		{300, 3}, // exact multiple: no empty trailing chunk
		{301, 4},
	}
	for _, tc := range cases {
		tx.SetMessage(bytes.Repeat([]byte{'x'}, tc.payloadLen))
		if got := tx.RequiredChunks(); got != tc.want {
			t.Fatalf("payload %d: expected %d chunks, got %d", tc.payloadLen, tc.want, got)
		}
	}
}

func TestChunkBudgetFailsBeforeNetwork(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		t.Error("nothing should reach the network")
		return mocknode.TransactionResponse(hedera.StatusOK), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 1)
	c.SetOperator(payerID, operatorKey(t))

	tx := NewTopicMessageSubmitTransaction().
		SetTopicID(testTopicID).
		SetChunkSize(10).
		SetMaxChunks(3).
		SetMessage(bytes.Repeat([]byte{'x'}, 31)) // needs 4 chunks

	_, err := tx.Execute(context.Background(), c)
	var budget *hedera.ChunkBudgetError
	if !errors.As(err, &budget) {
		t.Fatalf("expected chunk budget error, got %v", err)
	}
	if budget.Required != 4 || budget.MaxChunks != 3 {
		t.Fatalf("unexpected budget report %+v", budget)
	}
	if srv.CallCount() != 0 {
		t.Fatalf("budget violation must be detected before submission, saw %d calls", srv.CallCount())
	}
}

func TestChunkedSubmitOrderingAndIdentifiers(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		if method == "submitMessage" {
			return mocknode.TransactionResponse(hedera.StatusOK), nil
		}
		return mocknode.ReceiptResponse(hedera.StatusSuccess, nil), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 1)
	c.SetOperator(payerID, operatorKey(t))

	payload := bytes.Repeat([]byte{'m'}, 25)
	tx := NewTopicMessageSubmitTransaction().
		SetTopicID(testTopicID).
		SetChunkSize(10).
		SetMessage(payload)

	responses, err := tx.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("chunked submit failed: %v", err)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 chunk responses, got %d", len(responses))
	}

	var submits []*dynamicpb.Message
	for _, call := range srv.Calls() {
		if call.Method == "submitMessage" {
			submits = append(submits, call.Request)
		}
	}
	if len(submits) != 3 {
		t.Fatalf("expected 3 submissions, saw %d", len(submits))
	}

	var initial hedera.TransactionID
	var reassembled []byte
	for k, req := range submits {
		body := decodeBody(t, req)
		txID := hapi.TransactionIDFromMessage(hapi.GetMessage(body.ProtoReflect(), "transactionID"))
		data := hapi.GetMessage(body.ProtoReflect(), "consensusSubmitMessage")

		if got := hapi.TopicIDFromMessage(hapi.GetMessage(data, "topicID")); got != testTopicID {
			t.Fatalf("chunk %d bound to wrong topic %v", k, got)
		}
		reassembled = append(reassembled, hapi.GetBytes(data, "message")...)

		info := hapi.GetMessage(data, "chunkInfo")
		if got := hapi.GetInt32(info, "total"); got != 3 {
			t.Fatalf("chunk %d reports total %d", k, got)
		}
		if got := hapi.GetInt32(info, "number"); got != int32(k+1) {
			t.Fatalf("chunk %d reports number %d", k, got)
		}

		infoID := hapi.TransactionIDFromMessage(hapi.GetMessage(info, "initialTransactionID"))
		if k == 0 {
			initial = infoID
			if txID != initial {
				t.Fatal("first chunk's own id must equal the initial id")
			}
			continue
		}
		if infoID != initial {
			t.Fatalf("chunk %d references a different initial id", k)
		}
		want := initial.WithValidStart(initial.ValidStart.Add(time.Duration(k) * time.Nanosecond))
		if txID != want {
			t.Fatalf("chunk %d id %v, want %v", k, txID, want)
		}
	}
	if !bytes.Equal(reassembled, payload) {
		t.Fatal("chunks do not reassemble into the original payload")
	}
}

func TestChunkErrorReportsPartialProgress(t *testing.T) {
	var mu sync.Mutex
	submits := 0
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		mu.Lock()
		defer mu.Unlock()
		if method != "submitMessage" {
			return mocknode.ReceiptResponse(hedera.StatusSuccess, nil), nil
		}
		submits++
		if submits == 2 {
			return mocknode.TransactionResponse(hedera.StatusInvalidTopicID), nil
		}
		return mocknode.TransactionResponse(hedera.StatusOK), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 1)
	c.SetOperator(payerID, operatorKey(t))

	tx := NewTopicMessageSubmitTransaction().
		SetTopicID(testTopicID).
		SetChunkSize(10).
		SetMessage(bytes.Repeat([]byte{'m'}, 30))

	responses, err := tx.Execute(context.Background(), c)
	var chunkErr *hedera.ChunkError
	if !errors.As(err, &chunkErr) {
		t.Fatalf("expected chunk error, got %v", err)
	}
	if chunkErr.Index != 1 || chunkErr.Total != 3 {
		t.Fatalf("unexpected chunk failure report %+v", chunkErr)
	}
	if p, ok := hedera.IsPrecheck(err); !ok || p.Status != hedera.StatusInvalidTopicID {
		t.Fatal("expected the underlying precheck failure to remain matchable")
	}
	// The first chunk went through and is reported; it is not rolled back.
	if len(responses) != 1 {
		t.Fatalf("expected 1 accepted chunk response, got %d", len(responses))
	}
}

func TestFileAppendChunks(t *testing.T) {
	fileID := hedera.NewFileID(0, 0, 150)
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		if method == "appendContent" {
			return mocknode.TransactionResponse(hedera.StatusOK), nil
		}
		return mocknode.ReceiptResponse(hedera.StatusSuccess, nil), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 1)
	c.SetOperator(payerID, operatorKey(t))

	contents := bytes.Repeat([]byte{'f'}, 2500)
	tx := NewFileAppendTransaction().
		SetFileID(fileID).
		SetContents(contents)

	responses, err := tx.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 chunks at the default chunk size, got %d", len(responses))
	}

	var reassembled []byte
	for _, call := range srv.Calls() {
		if call.Method != "appendContent" {
			continue
		}
		body := decodeBody(t, call.Request)
		data := hapi.GetMessage(body.ProtoReflect(), "fileAppend")
		if got := hapi.FileIDFromMessage(hapi.GetMessage(data, "fileID")); got != fileID {
			t.Fatalf("append bound to wrong file %v", got)
		}
		reassembled = append(reassembled, hapi.GetBytes(data, "contents")...)
	}
	if !bytes.Equal(reassembled, contents) {
		t.Fatal("appended chunks do not reassemble into the original contents")
	}
}
