package sdk

import (
	"context"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// Transfer is one hbar adjustment in a transaction record.
type Transfer struct {
	AccountID hedera.AccountID
	Amount    hedera.Hbar
}

// TransactionRecord is the full post-consensus record of a transaction:
// the receipt plus consensus metadata and the complete transfer list,
// including the fee charges the network added.
type TransactionRecord struct {
	Receipt            *TransactionReceipt
	TransactionHash    []byte
	ConsensusTimestamp time.Time
	TransactionID      hedera.TransactionID
	Memo               string
	Fee                hedera.Hbar
	Transfers          []Transfer
}

func recordFromMessage(m protoreflect.Message) *TransactionRecord {
	r := &TransactionRecord{
		Receipt:         receiptFromMessage(hapi.GetMessage(m, "receipt")),
		TransactionHash: hapi.GetBytes(m, "transactionHash"),
		TransactionID:   hapi.TransactionIDFromMessage(hapi.GetMessage(m, "transactionID")),
		Memo:            hapi.GetString(m, "memo"),
		Fee:             hedera.HbarFromTinybar(int64(hapi.GetUint64(m, "transactionFee"))),
	}
	if hapi.Has(m, "consensusTimestamp") {
		r.ConsensusTimestamp = hapi.TimestampFromMessage(hapi.GetMessage(m, "consensusTimestamp"))
	}
	if hapi.Has(m, "transferList") {
		list := hapi.GetList(hapi.GetMessage(m, "transferList"), "accountAmounts")
		for i := 0; i < list.Len(); i++ {
			aa := list.Get(i).Message()
			r.Transfers = append(r.Transfers, Transfer{
				AccountID: hapi.AccountIDFromMessage(hapi.GetMessage(aa, "accountID")),
				Amount:    hedera.HbarFromTinybar(hapi.GetInt64(aa, "amount")),
			})
		}
	}
	return r
}

// TransactionGetRecordQuery fetches the full record of a transaction.
// Records are a paid lookup: a signed payment transfer rides in the header.
type TransactionGetRecordQuery struct {
	Query
	transactionID *hedera.TransactionID
}

// NewTransactionGetRecordQuery creates an empty record query.
func NewTransactionGetRecordQuery() *TransactionGetRecordQuery {
	q := &TransactionGetRecordQuery{}
	q.Query = newQuery(q)
	return q
}

// SetTransactionID sets the transaction whose record is requested.
func (q *TransactionGetRecordQuery) SetTransactionID(id hedera.TransactionID) error {
	q.transactionID = &id
	return nil
}

// Execute runs the query and returns the record.
func (q *TransactionGetRecordQuery) Execute(ctx context.Context, c *client.Client) (*TransactionRecord, error) {
	return runQuery(ctx, c, &q.Query, func(arm protoreflect.Message) (*TransactionRecord, error) {
		return recordFromMessage(hapi.GetMessage(arm, "transactionRecord")), nil
	})
}

func (q *TransactionGetRecordQuery) data(header *dynamicpb.Message) (string, proto.Message, error) {
	if q.transactionID == nil {
		return "transactionGetRecord", nil, hedera.ErrFieldRequired("transactionID")
	}
	arm := hapi.NewMessage("TransactionGetRecordQuery")
	hapi.SetMessage(arm, "header", header)
	hapi.SetMessage(arm, "transactionID", hapi.TransactionIDMessage(*q.transactionID))
	return "transactionGetRecord", arm, nil
}

func (q *TransactionGetRecordQuery) methodName() string { return "getTxRecordByTxID" }

func (q *TransactionGetRecordQuery) requiresPayment() bool { return true }
