package sdk

import (
	"context"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/crypto"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// defaultAutoRenewPeriod is roughly 92 days, the network's standard
// auto-renew window.
const defaultAutoRenewPeriod = 7_890_000 * time.Second

// AccountCreateTransaction creates a new account controlled by the given
// key. The key is mandatory; freezing without one fails with a
// ValidationError before anything is sent.
type AccountCreateTransaction struct {
	Transaction

	key            *crypto.PublicKey
	initialBalance hedera.Hbar
	accountMemo    string
	autoRenew      time.Duration
}

// NewAccountCreateTransaction creates an account-create builder with the
// default auto-renew period.
func NewAccountCreateTransaction() *AccountCreateTransaction {
	t := &AccountCreateTransaction{autoRenew: defaultAutoRenewPeriod}
	t.Transaction = newTransaction(t)
	return t
}

// SetKey sets the key that will control the new account. Required.
func (t *AccountCreateTransaction) SetKey(key crypto.PublicKey) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.key = &key
	return nil
}

// SetInitialBalance funds the new account from the payer.
func (t *AccountCreateTransaction) SetInitialBalance(balance hedera.Hbar) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.initialBalance = balance
	return nil
}

// SetAccountMemo attaches a memo to the account itself, as opposed to the
// transaction memo.
func (t *AccountCreateTransaction) SetAccountMemo(memo string) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.accountMemo = memo
	return nil
}

// SetAutoRenewPeriod overrides the account's auto-renew period.
func (t *AccountCreateTransaction) SetAutoRenewPeriod(d time.Duration) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.autoRenew = d
	return nil
}

// Execute submits the account creation. The receipt carries the new
// account's ID.
func (t *AccountCreateTransaction) Execute(ctx context.Context, c *client.Client) (*TransactionResponse, error) {
	return t.execute(ctx, c)
}

func (t *AccountCreateTransaction) data() (string, proto.Message, error) {
	if t.key == nil {
		return "cryptoCreateAccount", nil, hedera.ErrFieldRequired("key")
	}
	body := hapi.NewMessage("CryptoCreateTransactionBody")
	hapi.SetMessage(body, "key", hapi.KeyMessage(*t.key))
	if !t.initialBalance.IsZero() {
		hapi.SetUint64(body, "initialBalance", uint64(t.initialBalance.Tinybar()))
	}
	hapi.SetMessage(body, "autoRenewPeriod", hapi.DurationMessage(t.autoRenew))
	if t.accountMemo != "" {
		hapi.SetString(body, "memo", t.accountMemo)
	}
	return "cryptoCreateAccount", body, nil
}

func (t *AccountCreateTransaction) methodName() string { return "createAccount" }
