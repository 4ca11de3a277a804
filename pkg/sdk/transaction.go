package sdk

import (
	"context"
	"crypto/sha512"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/crypto"
	"github.com/shamank/hiero-sdk-go/pkg/execute"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

const (
	// defaultTransactionFee is the maximum fee attached when the caller
	// does not set one, in tinybar.
	defaultTransactionFee = 2_000_000

	// defaultValidDuration is the window after the transaction's valid
	// start during which nodes accept it.
	defaultValidDuration = 120 * time.Second
)

// bodyBuilder is what a concrete transaction type contributes: the
// operation-specific payload and the gRPC method that accepts it. The shared
// Transaction machinery handles everything around it.
type bodyBuilder interface {
	// data returns the TransactionBody oneof field name and its payload.
	data() (field string, body proto.Message, err error)
	// methodName is the unqualified gRPC method the body is submitted to.
	methodName() string
}

// SignaturePair is one collected signature and the key that produced it.
type SignaturePair struct {
	PublicKey crypto.PublicKey
	Signature []byte
}

// Transaction carries the state shared by every transaction type: common
// body fields, the frozen body bytes, and the collected signatures. Concrete
// types embed it and register themselves as the body builder.
//
// A transaction moves through freeze → sign → execute. Freezing binds the
// transaction ID and target node and serializes the body; after that the
// body is immutable and signatures accumulate over the exact frozen bytes.
type Transaction struct {
	builder bodyBuilder

	transactionID  *hedera.TransactionID
	nodeAccountID  *hedera.AccountID
	maxFee         *hedera.Hbar
	validDuration  time.Duration
	generateRecord bool
	memo           string

	bodyBytes  []byte
	signatures []SignaturePair
}

func newTransaction(b bodyBuilder) Transaction {
	return Transaction{builder: b, validDuration: defaultValidDuration}
}

func (t *Transaction) requireNotFrozen() error {
	if t.bodyBytes != nil {
		return hedera.ErrFrozen
	}
	return nil
}

// SetTransactionID overrides the generated transaction ID. Fails once the
// transaction is frozen.
func (t *Transaction) SetTransactionID(id hedera.TransactionID) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.transactionID = &id
	return nil
}

// TransactionID returns the bound transaction ID, zero before freezing when
// none was set explicitly.
func (t *Transaction) TransactionID() hedera.TransactionID {
	if t.transactionID == nil {
		return hedera.TransactionID{}
	}
	return *t.transactionID
}

// SetNodeAccountID pins the transaction to a specific node. Fails once the
// transaction is frozen.
func (t *Transaction) SetNodeAccountID(id hedera.AccountID) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.nodeAccountID = &id
	return nil
}

// NodeAccountID returns the node the transaction is bound to, zero before
// freezing when none was set explicitly.
func (t *Transaction) NodeAccountID() hedera.AccountID {
	if t.nodeAccountID == nil {
		return hedera.AccountID{}
	}
	return *t.nodeAccountID
}

// SetMaxTransactionFee caps the fee the payer is willing to be charged.
func (t *Transaction) SetMaxTransactionFee(fee hedera.Hbar) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.maxFee = &fee
	return nil
}

// SetTransactionValidDuration sets how long after the valid start nodes
// accept the transaction.
func (t *Transaction) SetTransactionValidDuration(d time.Duration) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.validDuration = d
	return nil
}

// SetTransactionMemo attaches a short free-form memo.
func (t *Transaction) SetTransactionMemo(memo string) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.memo = memo
	return nil
}

// SetGenerateRecord asks the network to create a full record in addition to
// the receipt.
func (t *Transaction) SetGenerateRecord(v bool) error {
	if err := t.requireNotFrozen(); err != nil {
		return err
	}
	t.generateRecord = v
	return nil
}

// IsFrozen reports whether the body has been serialized.
func (t *Transaction) IsFrozen() bool { return t.bodyBytes != nil }

// BodyBytes returns the frozen body serialization, nil before freezing.
func (t *Transaction) BodyBytes() []byte { return t.bodyBytes }

// Signatures returns the collected signature pairs.
func (t *Transaction) Signatures() []SignaturePair { return t.signatures }

// FreezeWith binds the transaction ID and node (generating defaults from the
// client where unset), builds the body, and serializes it. Freezing twice is
// a no-op: the first frozen bytes stand.
func (t *Transaction) FreezeWith(c *client.Client) error {
	if t.bodyBytes != nil {
		return nil
	}
	if t.transactionID == nil {
		id, err := c.GenerateTransactionID()
		if err != nil {
			return err
		}
		t.transactionID = &id
	}
	if t.nodeAccountID == nil {
		node := c.Network().Current().AccountID
		t.nodeAccountID = &node
	}
	body, err := t.buildBody()
	if err != nil {
		return err
	}
	b, err := proto.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal transaction body: %w", err)
	}
	t.bodyBytes = b
	return nil
}

func (t *Transaction) buildBody() (proto.Message, error) {
	body := hapi.NewMessage("TransactionBody")
	hapi.SetMessage(body, "transactionID", hapi.TransactionIDMessage(*t.transactionID))
	hapi.SetMessage(body, "nodeAccountID", hapi.AccountIDMessage(*t.nodeAccountID))
	fee := int64(defaultTransactionFee)
	if t.maxFee != nil {
		fee = t.maxFee.Tinybar()
	}
	hapi.SetUint64(body, "transactionFee", uint64(fee))
	hapi.SetMessage(body, "transactionValidDuration", hapi.DurationMessage(t.validDuration))
	if t.generateRecord {
		hapi.SetBool(body, "generateRecord", true)
	}
	if t.memo != "" {
		hapi.SetString(body, "memo", t.memo)
	}
	field, data, err := t.builder.data()
	if err != nil {
		return nil, err
	}
	hapi.SetMessage(body, field, data)
	return body, nil
}

// Sign adds a signature over the frozen body. The transaction must be frozen
// first; signing with a key that already signed returns
// hedera.ErrAlreadySigned and leaves the collected set unchanged.
func (t *Transaction) Sign(key crypto.PrivateKey) error {
	if t.bodyBytes == nil {
		return fmt.Errorf("transaction must be frozen before signing")
	}
	pub := key.PublicKey()
	if t.IsSignedBy(pub) {
		return hedera.ErrAlreadySigned
	}
	sig, err := key.Sign(t.bodyBytes)
	if err != nil {
		return err
	}
	t.signatures = append(t.signatures, SignaturePair{PublicKey: pub, Signature: sig})
	return nil
}

// IsSignedBy reports whether the given key already contributed a signature.
func (t *Transaction) IsSignedBy(pub crypto.PublicKey) bool {
	for _, p := range t.signatures {
		if p.PublicKey.Equal(pub) {
			return true
		}
	}
	return false
}

// signWithOperator signs with the client operator unless it already signed.
func (t *Transaction) signWithOperator(c *client.Client) error {
	op := c.Operator()
	if op == nil {
		return hedera.ErrNoOperator
	}
	if t.IsSignedBy(op.PrivateKey.PublicKey()) {
		return nil
	}
	return t.Sign(op.PrivateKey)
}

// toWire wraps the frozen body and signature map into the outer envelope
// nodes accept on the wire.
func (t *Transaction) toWire() (proto.Message, error) {
	if t.bodyBytes == nil {
		return nil, fmt.Errorf("transaction is not frozen")
	}
	sigMap := hapi.NewMessage("SignatureMap")
	for _, p := range t.signatures {
		pair := hapi.NewMessage("SignaturePair")
		hapi.SetBytes(pair, "pubKeyPrefix", p.PublicKey.BytesRaw())
		switch p.PublicKey.Kind() {
		case crypto.KindEd25519:
			hapi.SetBytes(pair, "ed25519", p.Signature)
		case crypto.KindECDSASecp256k1:
			hapi.SetBytes(pair, "ECDSASecp256k1", p.Signature)
		}
		hapi.AppendMessage(sigMap, "sigPair", pair)
	}
	signed := hapi.NewMessage("SignedTransaction")
	hapi.SetBytes(signed, "bodyBytes", t.bodyBytes)
	hapi.SetMessage(signed, "sigMap", sigMap)
	signedBytes, err := proto.Marshal(signed)
	if err != nil {
		return nil, fmt.Errorf("marshal signed transaction: %w", err)
	}
	envelope := hapi.NewMessage("Transaction")
	hapi.SetBytes(envelope, "signedTransactionBytes", signedBytes)
	return envelope, nil
}

// execute freezes and operator-signs as needed, then hands the transaction
// to the engine. Shared by Execute on every concrete type.
func (t *Transaction) execute(ctx context.Context, c *client.Client) (*TransactionResponse, error) {
	if err := t.FreezeWith(c); err != nil {
		return nil, err
	}
	if c.Operator() != nil {
		if err := t.signWithOperator(c); err != nil {
			return nil, err
		}
	} else if len(t.signatures) == 0 {
		return nil, hedera.ErrNoOperator
	}
	return execute.Execute[*TransactionResponse](ctx, c, t)
}

// Nodes restricts execution to the node the body was frozen against; the
// node account ID is part of the signed bytes, so failover cannot move a
// frozen transaction elsewhere.
func (t *Transaction) Nodes(c *client.Client) []hedera.AccountID {
	if t.nodeAccountID == nil {
		return nil
	}
	return []hedera.AccountID{*t.nodeAccountID}
}

// MakeRequest returns the signed envelope. The node argument is ignored:
// the target node is fixed at freeze time.
func (t *Transaction) MakeRequest(node hedera.AccountID) (proto.Message, error) {
	return t.toWire()
}

// Method binds the concrete type's gRPC method to the channel.
func (t *Transaction) Method(conn *grpc.ClientConn) execute.MethodFn {
	name := t.builder.methodName()
	return func(ctx context.Context, req proto.Message) (proto.Message, error) {
		return hapi.Invoke(ctx, conn, name, req)
	}
}

// ShouldRetry classifies the node's precheck code.
func (t *Transaction) ShouldRetry(resp proto.Message) execute.State {
	status := precheckStatus(resp)
	switch {
	case status.IsRetryable():
		return execute.StateRetry
	case status == hedera.StatusOK:
		return execute.StateFinished
	case status == hedera.StatusTransactionExpired:
		return execute.StateExpired
	}
	return execute.StateError
}

// MapResponse builds the typed response for an accepted submission. The hash
// is SHA-384 over the exact signed envelope bytes that went on the wire.
func (t *Transaction) MapResponse(resp proto.Message, node hedera.AccountID, req proto.Message) (*TransactionResponse, error) {
	signedBytes := hapi.GetBytes(req.ProtoReflect(), "signedTransactionBytes")
	hash := sha512.Sum384(signedBytes)
	return &TransactionResponse{
		TransactionID:  *t.transactionID,
		NodeID:         node,
		Hash:           hash[:],
		ValidateStatus: true,
	}, nil
}

// MapStatusError converts a rejecting precheck code into its typed error.
func (t *Transaction) MapStatusError(resp proto.Message) error {
	status := precheckStatus(resp)
	id := t.TransactionID()
	if status == hedera.StatusTransactionExpired {
		return &hedera.ExpiredError{TransactionID: id}
	}
	return &hedera.PrecheckError{Status: status, TransactionID: id}
}

func precheckStatus(resp proto.Message) hedera.Status {
	return hedera.Status(hapi.GetEnum(resp.ProtoReflect(), "nodeTransactionPrecheckCode"))
}
