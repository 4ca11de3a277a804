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

// AccountBalance is the result of a balance lookup.
type AccountBalance struct {
	AccountID hedera.AccountID
	Hbar      hedera.Hbar
}

// AccountBalanceQuery fetches an account's current hbar balance. Balance
// lookups are free.
type AccountBalanceQuery struct {
	Query
	accountID *hedera.AccountID
}

// NewAccountBalanceQuery creates an empty balance query.
func NewAccountBalanceQuery() *AccountBalanceQuery {
	q := &AccountBalanceQuery{}
	q.Query = newQuery(q)
	return q
}

// SetAccountID sets the account whose balance is requested.
func (q *AccountBalanceQuery) SetAccountID(id hedera.AccountID) error {
	q.accountID = &id
	return nil
}

// Execute runs the query and returns the balance.
func (q *AccountBalanceQuery) Execute(ctx context.Context, c *client.Client) (*AccountBalance, error) {
	return runQuery(ctx, c, &q.Query, func(arm protoreflect.Message) (*AccountBalance, error) {
		return &AccountBalance{
			AccountID: hapi.AccountIDFromMessage(hapi.GetMessage(arm, "accountID")),
			Hbar:      hedera.HbarFromTinybar(int64(hapi.GetUint64(arm, "balance"))),
		}, nil
	})
}

func (q *AccountBalanceQuery) data(header *dynamicpb.Message) (string, proto.Message, error) {
	if q.accountID == nil {
		return "cryptogetAccountBalance", nil, hedera.ErrFieldRequired("accountID")
	}
	arm := hapi.NewMessage("CryptoGetAccountBalanceQuery")
	hapi.SetMessage(arm, "header", header)
	hapi.SetMessage(arm, "accountID", hapi.AccountIDMessage(*q.accountID))
	return "cryptogetAccountBalance", arm, nil
}

func (q *AccountBalanceQuery) methodName() string { return "cryptoGetBalance" }

func (q *AccountBalanceQuery) requiresPayment() bool { return false }
