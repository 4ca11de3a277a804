package sdk

import (
	"context"
	"errors"
	"sync"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/shamank/hiero-sdk-go/internal/testutil/mocknode"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

func recordResponse(status hedera.Status) proto.Message {
	header := hapi.NewMessage("ResponseHeader")
	hapi.SetEnum(header, "nodeTransactionPrecheckCode", int32(hedera.StatusOK))

	receipt := hapi.NewMessage("TransactionReceipt")
	hapi.SetEnum(receipt, "status", int32(status))
	record := hapi.NewMessage("TransactionRecord")
	hapi.SetMessage(record, "receipt", receipt)
	hapi.SetString(record, "memo", "recorded")

	arm := hapi.NewMessage("TransactionGetRecordResponse")
	hapi.SetMessage(arm, "header", header)
	hapi.SetMessage(arm, "transactionRecord", record)

	resp := hapi.NewMessage("Response")
	hapi.SetMessage(resp, "transactionGetRecord", arm)
	return resp
}

func TestAccountBalanceQuery(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		if method != "cryptoGetBalance" {
			t.Errorf("unexpected method %s", method)
		}
		return mocknode.BalanceResponse(aliceID, 42*hedera.TinybarPerHbar), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 1)

	q := NewAccountBalanceQuery()
	if err := q.SetAccountID(aliceID); err != nil {
		t.Fatal(err)
	}
	balance, err := q.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if balance.AccountID != aliceID {
		t.Fatalf("unexpected account %v", balance.AccountID)
	}
	if balance.Hbar.Tinybar() != 42*hedera.TinybarPerHbar {
		t.Fatalf("unexpected balance %v", balance.Hbar)
	}
}

func TestFeeFreeQueryCarriesNoPayment(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		return mocknode.ReceiptResponse(hedera.StatusSuccess, nil), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 1)
	// Even with an operator configured, free lookups must not spend.
	c.SetOperator(payerID, operatorKey(t))

	q := NewTransactionGetReceiptQuery()
	if err := q.SetTransactionID(hedera.NewTransactionID(payerID)); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Execute(context.Background(), c); err != nil {
		t.Fatalf("query failed: %v", err)
	}

	calls := srv.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one call, saw %d", len(calls))
	}
	arm := hapi.GetMessage(calls[0].Request.ProtoReflect(), "transactionGetReceipt")
	header := hapi.GetMessage(arm, "header")
	if hapi.Has(header, "payment") {
		t.Fatal("fee-free query must not embed a payment")
	}
}

func TestFeeBearingQueryEmbedsSignedPayment(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		if method != "getTxRecordByTxID" {
			t.Errorf("unexpected method %s", method)
		}
		return recordResponse(hedera.StatusSuccess), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 1)
	key := operatorKey(t)
	c.SetOperator(payerID, key)

	q := NewTransactionGetRecordQuery()
	if err := q.SetTransactionID(hedera.NewTransactionID(payerID)); err != nil {
		t.Fatal(err)
	}
	record, err := q.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if record.Memo != "recorded" {
		t.Fatalf("unexpected record memo %q", record.Memo)
	}

	calls := srv.Calls()
	arm := hapi.GetMessage(calls[0].Request.ProtoReflect(), "transactionGetRecord")
	header := hapi.GetMessage(arm, "header")
	if !hapi.Has(header, "payment") {
		t.Fatal("fee-bearing query must embed a payment")
	}

	// The payment is a complete signed transfer: operator debited, node
	// credited, signed by the operator key.
	payment := hapi.GetMessage(header, "payment")
	signed := hapi.NewMessage("SignedTransaction")
	if err := proto.Unmarshal(hapi.GetBytes(payment, "signedTransactionBytes"), signed); err != nil {
		t.Fatalf("payment envelope does not decode: %v", err)
	}
	bodyBytes := hapi.GetBytes(signed.ProtoReflect(), "bodyBytes")
	body := hapi.NewMessage("TransactionBody")
	if err := proto.Unmarshal(bodyBytes, body); err != nil {
		t.Fatalf("payment body does not decode: %v", err)
	}

	amounts := hapi.GetList(hapi.GetMessage(hapi.GetMessage(body.ProtoReflect(), "cryptoTransfer"), "transfers"), "accountAmounts")
	if amounts.Len() != 2 {
		t.Fatalf("expected 2 payment entries, got %d", amounts.Len())
	}
	var nodeCredit int64
	for i := 0; i < amounts.Len(); i++ {
		entry := amounts.Get(i).Message()
		if hapi.AccountIDFromMessage(hapi.GetMessage(entry, "accountID")) == hedera.NewAccountID(0, 0, 3) {
			nodeCredit = hapi.GetInt64(entry, "amount")
		}
	}
	if nodeCredit <= 0 {
		t.Fatalf("expected the queried node to be credited, got %d", nodeCredit)
	}

	pairs := hapi.GetList(hapi.GetMessage(signed.ProtoReflect(), "sigMap"), "sigPair")
	if pairs.Len() != 1 {
		t.Fatalf("expected the operator signature on the payment, got %d pairs", pairs.Len())
	}
	if !key.PublicKey().Verify(bodyBytes, hapi.GetBytes(pairs.Get(0).Message(), "ed25519")) {
		t.Fatal("payment signature does not verify")
	}
}

func TestFeeBearingQueryRequiresOperator(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		t.Error("nothing should reach the network")
		return recordResponse(hedera.StatusSuccess), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 1)

	q := NewTransactionGetRecordQuery()
	if err := q.SetTransactionID(hedera.NewTransactionID(payerID)); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Execute(context.Background(), c); !errors.Is(err, hedera.ErrNoOperator) {
		t.Fatalf("expected ErrNoOperator, got %v", err)
	}
}

func TestQueryRotatesNodesOnBusy(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts < 3 {
			return mocknode.QueryErrorResponse("cryptogetAccountBalance", hedera.StatusBusy), nil
		}
		return mocknode.BalanceResponse(aliceID, 7), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 4)

	q := NewAccountBalanceQuery()
	if err := q.SetAccountID(aliceID); err != nil {
		t.Fatal(err)
	}
	balance, err := q.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if balance.Hbar.Tinybar() != 7 {
		t.Fatalf("unexpected balance %v", balance.Hbar)
	}

	if srv.CallCount() != 3 {
		t.Fatalf("expected 3 attempts, saw %d", srv.CallCount())
	}
}

func TestQueryTerminalHeaderError(t *testing.T) {
	srv := mocknode.Start(func(method string, req *dynamicpb.Message) (proto.Message, error) {
		return mocknode.QueryErrorResponse("cryptogetAccountBalance", hedera.StatusInvalidAccountID), nil
	})
	defer srv.Stop()

	c := newMockClient(t, srv, 2)

	q := NewAccountBalanceQuery()
	if err := q.SetAccountID(aliceID); err != nil {
		t.Fatal(err)
	}
	_, err := q.Execute(context.Background(), c)
	p, ok := hedera.IsPrecheck(err)
	if !ok || p.Status != hedera.StatusInvalidAccountID {
		t.Fatalf("expected terminal precheck error, got %v", err)
	}
	if srv.CallCount() != 1 {
		t.Fatalf("terminal header error must not retry, saw %d calls", srv.CallCount())
	}
}
