package sdk

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/execute"
	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// queryPaymentFee is the maximum fee attached to the payment transfer
// embedded in a fee-bearing query, in tinybar.
const queryPaymentFee = 100_000_000

// queryBuilder is what a concrete query type contributes: the Query oneof
// payload (with the header attached), the gRPC method, and whether the
// operation charges a fee.
type queryBuilder interface {
	// data returns the Query oneof field name and the payload with the
	// given header already attached. The same field name selects the
	// matching arm of the Response oneof.
	data(header *dynamicpb.Message) (field string, msg proto.Message, err error)
	// methodName is the unqualified gRPC method the query is sent to.
	methodName() string
	// requiresPayment reports whether a signed payment transfer must ride
	// in the header.
	requiresPayment() bool
}

// Query carries the state shared by every query type. Unlike a transaction,
// a query is not bound to a node: the request is rebuilt per attempt so the
// embedded payment can name the node actually being asked, and failover
// rotates through all candidates.
type Query struct {
	builder        queryBuilder
	nodeAccountIDs []hedera.AccountID
	payment        *hedera.Hbar

	// operator is captured from the client when execution starts; the
	// engine builds requests without seeing the client again.
	operator *client.Operator
}

func newQuery(b queryBuilder) Query {
	return Query{builder: b}
}

// SetNodeAccountIDs restricts execution to an explicit candidate set instead
// of every node the client knows.
func (q *Query) SetNodeAccountIDs(ids []hedera.AccountID) {
	q.nodeAccountIDs = ids
}

// SetQueryPayment overrides the amount of the embedded payment transfer for
// fee-bearing queries.
func (q *Query) SetQueryPayment(amount hedera.Hbar) {
	q.payment = &amount
}

// Nodes returns the explicit candidate set, or nil for the client's full set.
func (q *Query) Nodes(c *client.Client) []hedera.AccountID {
	return q.nodeAccountIDs
}

// MakeRequest builds the query for one attempt. Fee-bearing queries get a
// freshly signed payment transfer crediting the node being asked; fee-free
// queries carry a bare header even when an operator is configured.
func (q *Query) MakeRequest(node hedera.AccountID) (proto.Message, error) {
	header := hapi.NewMessage("QueryHeader")
	hapi.SetEnum(header, "responseType", 0) // ANSWER_ONLY
	if q.builder.requiresPayment() {
		if q.operator == nil {
			return nil, hedera.ErrNoOperator
		}
		amount := hedera.NewHbar(1)
		if q.payment != nil {
			amount = *q.payment
		}
		payment, err := buildQueryPayment(q.operator, node, amount)
		if err != nil {
			return nil, err
		}
		hapi.SetMessage(header, "payment", payment)
	}
	field, arm, err := q.builder.data(header)
	if err != nil {
		return nil, err
	}
	msg := hapi.NewMessage("Query")
	hapi.SetMessage(msg, field, arm)
	return msg, nil
}

// Method binds the concrete type's gRPC method to the channel.
func (q *Query) Method(conn *grpc.ClientConn) execute.MethodFn {
	name := q.builder.methodName()
	return func(ctx context.Context, req proto.Message) (proto.Message, error) {
		return hapi.Invoke(ctx, conn, name, req)
	}
}

// responseArm extracts the oneof arm of the Response matching this query.
func (q *Query) responseArm(resp proto.Message) protoreflect.Message {
	field, _, _ := q.builder.data(hapi.NewMessage("QueryHeader"))
	return hapi.GetMessage(resp.ProtoReflect(), field)
}

func (q *Query) responseStatus(resp proto.Message) hedera.Status {
	header := hapi.GetMessage(q.responseArm(resp), "header")
	return hedera.Status(hapi.GetEnum(header, "nodeTransactionPrecheckCode"))
}

// ShouldRetry classifies the response header's precheck code.
func (q *Query) ShouldRetry(resp proto.Message) execute.State {
	status := q.responseStatus(resp)
	switch {
	case status.IsRetryable():
		return execute.StateRetry
	case status == hedera.StatusOK:
		return execute.StateFinished
	}
	return execute.StateError
}

// MapStatusError converts a rejecting header code into its typed error.
func (q *Query) MapStatusError(resp proto.Message) error {
	return &hedera.PrecheckError{Status: q.responseStatus(resp)}
}

// queryExecutable pairs the shared Query hooks with a concrete type's
// response mapping so the generic engine can produce a typed result.
type queryExecutable[T any] struct {
	*Query
	mapResponse func(arm protoreflect.Message) (T, error)
}

func (q queryExecutable[T]) MapResponse(resp proto.Message, node hedera.AccountID, req proto.Message) (T, error) {
	return q.mapResponse(q.responseArm(resp))
}

// runQuery captures the operator and drives the query through the engine.
func runQuery[T any](ctx context.Context, c *client.Client, q *Query, mapFn func(arm protoreflect.Message) (T, error)) (T, error) {
	q.operator = c.Operator()
	return execute.Execute[T](ctx, c, queryExecutable[T]{Query: q, mapResponse: mapFn})
}

// buildQueryPayment assembles and signs the transfer that pays the node for
// answering: operator debited, node credited. Each attempt gets a fresh
// transaction ID so resubmissions are never duplicates.
func buildQueryPayment(op *client.Operator, node hedera.AccountID, amount hedera.Hbar) (proto.Message, error) {
	tx := NewTransferTransaction()
	if err := tx.AddHbarTransfer(op.AccountID, amount.Negated()); err != nil {
		return nil, err
	}
	if err := tx.AddHbarTransfer(node, amount); err != nil {
		return nil, err
	}
	fee := hedera.HbarFromTinybar(queryPaymentFee)
	if err := tx.SetMaxTransactionFee(fee); err != nil {
		return nil, err
	}
	id := hedera.NewTransactionID(op.AccountID)
	if err := tx.SetTransactionID(id); err != nil {
		return nil, err
	}
	if err := tx.SetNodeAccountID(node); err != nil {
		return nil, err
	}
	body, err := tx.buildBody()
	if err != nil {
		return nil, err
	}
	bodyBytes, err := proto.Marshal(body)
	if err != nil {
		return nil, err
	}
	tx.bodyBytes = bodyBytes
	if err := tx.Sign(op.PrivateKey); err != nil {
		return nil, err
	}
	return tx.toWire()
}
