package sdk

import (
	"context"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// TransactionGetReceiptQuery fetches the post-consensus receipt of a
// transaction. Receipt lookups are free, so no payment rides in the header.
type TransactionGetReceiptQuery struct {
	Query
	transactionID *hedera.TransactionID
}

// NewTransactionGetReceiptQuery creates an empty receipt query.
func NewTransactionGetReceiptQuery() *TransactionGetReceiptQuery {
	q := &TransactionGetReceiptQuery{}
	q.Query = newQuery(q)
	return q
}

// SetTransactionID sets the transaction whose receipt is requested.
func (q *TransactionGetReceiptQuery) SetTransactionID(id hedera.TransactionID) error {
	q.transactionID = &id
	return nil
}

// Execute runs the query and returns the receipt.
func (q *TransactionGetReceiptQuery) Execute(ctx context.Context, c *client.Client) (*TransactionReceipt, error) {
	return runQuery(ctx, c, &q.Query, func(arm protoreflect.Message) (*TransactionReceipt, error) {
		return receiptFromMessage(hapi.GetMessage(arm, "receipt")), nil
	})
}

func (q *TransactionGetReceiptQuery) data(header *dynamicpb.Message) (string, proto.Message, error) {
	if q.transactionID == nil {
		return "transactionGetReceipt", nil, hedera.ErrFieldRequired("transactionID")
	}
	arm := hapi.NewMessage("TransactionGetReceiptQuery")
	hapi.SetMessage(arm, "header", header)
	hapi.SetMessage(arm, "transactionID", hapi.TransactionIDMessage(*q.transactionID))
	return "transactionGetReceipt", arm, nil
}

func (q *TransactionGetReceiptQuery) methodName() string { return "getTransactionReceipts" }

func (q *TransactionGetReceiptQuery) requiresPayment() bool { return false }
