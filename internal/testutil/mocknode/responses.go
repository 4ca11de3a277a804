package mocknode

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// TransactionResponse builds the node acknowledgement with the given
// precheck code.
func TransactionResponse(code hedera.Status) proto.Message {
	resp := hapi.NewMessage("TransactionResponse")
	hapi.SetEnum(resp, "nodeTransactionPrecheckCode", int32(code))
	return resp
}

// ReceiptResponse builds a receipt query response: header precheck OK and a
// receipt with the given status. mutate, when not nil, can decorate the
// receipt message with entity ids before it is wrapped.
func ReceiptResponse(receiptStatus hedera.Status, mutate func(receipt *dynamicpb.Message)) proto.Message {
	header := hapi.NewMessage("ResponseHeader")
	hapi.SetEnum(header, "nodeTransactionPrecheckCode", int32(hedera.StatusOK))

	receipt := hapi.NewMessage("TransactionReceipt")
	hapi.SetEnum(receipt, "status", int32(receiptStatus))
	if mutate != nil {
		mutate(receipt)
	}

	arm := hapi.NewMessage("TransactionGetReceiptResponse")
	hapi.SetMessage(arm, "header", header)
	hapi.SetMessage(arm, "receipt", receipt)

	resp := hapi.NewMessage("Response")
	hapi.SetMessage(resp, "transactionGetReceipt", arm)
	return resp
}

// BalanceResponse builds a balance query response for the given account.
func BalanceResponse(account hedera.AccountID, tinybar uint64) proto.Message {
	header := hapi.NewMessage("ResponseHeader")
	hapi.SetEnum(header, "nodeTransactionPrecheckCode", int32(hedera.StatusOK))

	arm := hapi.NewMessage("CryptoGetAccountBalanceResponse")
	hapi.SetMessage(arm, "header", header)
	hapi.SetMessage(arm, "accountID", hapi.AccountIDMessage(account))
	hapi.SetUint64(arm, "balance", tinybar)

	resp := hapi.NewMessage("Response")
	hapi.SetMessage(resp, "cryptogetAccountBalance", arm)
	return resp
}

// QueryErrorResponse builds a query response whose header carries a
// non-OK precheck code on the given response arm.
func QueryErrorResponse(arm string, code hedera.Status) proto.Message {
	header := hapi.NewMessage("ResponseHeader")
	hapi.SetEnum(header, "nodeTransactionPrecheckCode", int32(code))

	var inner *dynamicpb.Message
	switch arm {
	case "transactionGetReceipt":
		inner = hapi.NewMessage("TransactionGetReceiptResponse")
	case "transactionGetRecord":
		inner = hapi.NewMessage("TransactionGetRecordResponse")
	default:
		inner = hapi.NewMessage("CryptoGetAccountBalanceResponse")
	}
	hapi.SetMessage(inner, "header", header)

	resp := hapi.NewMessage("Response")
	hapi.SetMessage(resp, arm, inner)
	return resp
}
