package sdk

import (
	"context"

	"google.golang.org/protobuf/proto"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

type hbarTransfer struct {
	accountID hedera.AccountID
	amount    int64
}

type tokenTransfer struct {
	tokenID   hedera.TokenID
	accountID hedera.AccountID
	amount    int64
}

// TransferTransaction moves hbar and tokens between accounts. Debits are
// negative amounts, credits positive; the network rejects a transfer list
// that does not sum to zero per currency.
type TransferTransaction struct {
	Transaction

	hbarTransfers  []hbarTransfer
	tokenTransfers []tokenTransfer
}

// NewTransferTransaction creates an empty transfer.
func NewTransferTransaction() *TransferTransaction {
	t := &TransferTransaction{}
	t.Transaction = newTransaction(t)
	return t
}

// AddHbarTransfer adds an hbar adjustment for an account. Repeated calls for
// the same account accumulate into a single entry; entries keep the order in
// which accounts first appeared, so the serialized body is deterministic.
func (t *TransferTransaction) AddHbarTransfer(accountID hedera.AccountID, amount hedera.Hbar) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	for i := range t.hbarTransfers {
		if t.hbarTransfers[i].accountID == accountID {
			t.hbarTransfers[i].amount += amount.Tinybar()
			return nil
		}
	}
	t.hbarTransfers = append(t.hbarTransfers, hbarTransfer{accountID: accountID, amount: amount.Tinybar()})
	return nil
}

// AddTokenTransfer adds a token adjustment for an account, accumulating like
// AddHbarTransfer within each token.
func (t *TransferTransaction) AddTokenTransfer(tokenID hedera.TokenID, accountID hedera.AccountID, amount int64) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	for i := range t.tokenTransfers {
		if t.tokenTransfers[i].tokenID == tokenID && t.tokenTransfers[i].accountID == accountID {
			t.tokenTransfers[i].amount += amount
			return nil
		}
	}
	t.tokenTransfers = append(t.tokenTransfers, tokenTransfer{tokenID: tokenID, accountID: accountID, amount: amount})
	return nil
}

// Execute submits the transfer, freezing and operator-signing as needed.
func (t *TransferTransaction) Execute(ctx context.Context, c *client.Client) (*TransactionResponse, error) {
	return t.execute(ctx, c)
}

func (t *TransferTransaction) data() (string, proto.Message, error) {
	body := hapi.NewMessage("CryptoTransferTransactionBody")

	if len(t.hbarTransfers) > 0 {
		list := hapi.NewMessage("TransferList")
		for _, tr := range t.hbarTransfers {
			hapi.AppendMessage(list, "accountAmounts", hapi.AccountAmountMessage(tr.accountID, tr.amount))
		}
		hapi.SetMessage(body, "transfers", list)
	}

	// Group token adjustments by token, preserving first-appearance order.
	var tokenOrder []hedera.TokenID
	grouped := map[hedera.TokenID][]tokenTransfer{}
	for _, tr := range t.tokenTransfers {
		if _, ok := grouped[tr.tokenID]; !ok {
			tokenOrder = append(tokenOrder, tr.tokenID)
		}
		grouped[tr.tokenID] = append(grouped[tr.tokenID], tr)
	}
	for _, tokenID := range tokenOrder {
		list := hapi.NewMessage("TokenTransferList")
		hapi.SetMessage(list, "token", hapi.TokenIDMessage(tokenID))
		for _, tr := range grouped[tokenID] {
			hapi.AppendMessage(list, "transfers", hapi.AccountAmountMessage(tr.accountID, tr.amount))
		}
		hapi.AppendMessage(body, "tokenTransfers", list)
	}

	return "cryptoTransfer", body, nil
}

func (t *TransferTransaction) methodName() string { return "cryptoTransfer" }
