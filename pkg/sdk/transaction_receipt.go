package sdk

import (
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/shamank/hiero-sdk-go/pkg/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
)

// TransactionReceipt is the post-consensus summary of a transaction: its
// final status plus whichever entity the operation created or touched.
type TransactionReceipt struct {
	Status hedera.Status

	// Entity ids are set only when the operation produced them.
	AccountID  *hedera.AccountID
	FileID     *hedera.FileID
	ContractID *hedera.ContractID
	TopicID    *hedera.TopicID
	TokenID    *hedera.TokenID

	// Topic state after a consensus message submission.
	TopicSequenceNumber uint64
	TopicRunningHash    []byte

	// Token supply after a mint or burn.
	TotalSupply uint64
}

func receiptFromMessage(m protoreflect.Message) *TransactionReceipt {
	r := &TransactionReceipt{
		Status:              hedera.Status(hapi.GetEnum(m, "status")),
		TopicSequenceNumber: hapi.GetUint64(m, "topicSequenceNumber"),
		TopicRunningHash:    hapi.GetBytes(m, "topicRunningHash"),
		TotalSupply:         hapi.GetUint64(m, "newTotalSupply"),
	}
	if hapi.Has(m, "accountID") {
		id := hapi.AccountIDFromMessage(hapi.GetMessage(m, "accountID"))
		r.AccountID = &id
	}
	if hapi.Has(m, "fileID") {
		id := hapi.FileIDFromMessage(hapi.GetMessage(m, "fileID"))
		r.FileID = &id
	}
	if hapi.Has(m, "contractID") {
		id := hapi.ContractIDFromMessage(hapi.GetMessage(m, "contractID"))
		r.ContractID = &id
	}
	if hapi.Has(m, "topicID") {
		id := hapi.TopicIDFromMessage(hapi.GetMessage(m, "topicID"))
		r.TopicID = &id
	}
	if hapi.Has(m, "tokenID") {
		id := hapi.TokenIDFromMessage(hapi.GetMessage(m, "tokenID"))
		r.TokenID = &id
	}
	return r
}
