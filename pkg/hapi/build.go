package hapi

import (
	"time"

	"github.com/shamank/hiero-sdk-go/pkg/crypto"
	"github.com/shamank/hiero-sdk-go/pkg/hedera"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Converters between the SDK value types and their schema messages.

// AccountIDMessage builds a schema AccountID.
func AccountIDMessage(id hedera.AccountID) *dynamicpb.Message {
	m := NewMessage("AccountID")
	SetInt64(m, "shardNum", int64(id.Shard))
	SetInt64(m, "realmNum", int64(id.Realm))
	SetInt64(m, "accountNum", int64(id.Num))
	return m
}

// AccountIDFromMessage reads a schema AccountID.
func AccountIDFromMessage(m protoreflect.Message) hedera.AccountID {
	return hedera.NewAccountID(
		uint64(GetInt64(m, "shardNum")),
		uint64(GetInt64(m, "realmNum")),
		uint64(GetInt64(m, "accountNum")),
	)
}

// TokenIDMessage builds a schema TokenID.
func TokenIDMessage(id hedera.TokenID) *dynamicpb.Message {
	m := NewMessage("TokenID")
	SetInt64(m, "shardNum", int64(id.Shard))
	SetInt64(m, "realmNum", int64(id.Realm))
	SetInt64(m, "tokenNum", int64(id.Num))
	return m
}

// TokenIDFromMessage reads a schema TokenID.
func TokenIDFromMessage(m protoreflect.Message) hedera.TokenID {
	return hedera.NewTokenID(
		uint64(GetInt64(m, "shardNum")),
		uint64(GetInt64(m, "realmNum")),
		uint64(GetInt64(m, "tokenNum")),
	)
}

// TopicIDMessage builds a schema TopicID.
func TopicIDMessage(id hedera.TopicID) *dynamicpb.Message {
	m := NewMessage("TopicID")
	SetInt64(m, "shardNum", int64(id.Shard))
	SetInt64(m, "realmNum", int64(id.Realm))
	SetInt64(m, "topicNum", int64(id.Num))
	return m
}

// TopicIDFromMessage reads a schema TopicID.
func TopicIDFromMessage(m protoreflect.Message) hedera.TopicID {
	return hedera.NewTopicID(
		uint64(GetInt64(m, "shardNum")),
		uint64(GetInt64(m, "realmNum")),
		uint64(GetInt64(m, "topicNum")),
	)
}

// FileIDMessage builds a schema FileID.
func FileIDMessage(id hedera.FileID) *dynamicpb.Message {
	m := NewMessage("FileID")
	SetInt64(m, "shardNum", int64(id.Shard))
	SetInt64(m, "realmNum", int64(id.Realm))
	SetInt64(m, "fileNum", int64(id.Num))
	return m
}

// FileIDFromMessage reads a schema FileID.
func FileIDFromMessage(m protoreflect.Message) hedera.FileID {
	return hedera.NewFileID(
		uint64(GetInt64(m, "shardNum")),
		uint64(GetInt64(m, "realmNum")),
		uint64(GetInt64(m, "fileNum")),
	)
}

// ContractIDMessage builds a schema ContractID.
func ContractIDMessage(id hedera.ContractID) *dynamicpb.Message {
	m := NewMessage("ContractID")
	SetInt64(m, "shardNum", int64(id.Shard))
	SetInt64(m, "realmNum", int64(id.Realm))
	SetInt64(m, "contractNum", int64(id.Num))
	return m
}

// ContractIDFromMessage reads a schema ContractID.
func ContractIDFromMessage(m protoreflect.Message) hedera.ContractID {
	return hedera.NewContractID(
		uint64(GetInt64(m, "shardNum")),
		uint64(GetInt64(m, "realmNum")),
		uint64(GetInt64(m, "contractNum")),
	)
}

// TimestampMessage builds a schema Timestamp.
func TimestampMessage(t time.Time) *dynamicpb.Message {
	m := NewMessage("Timestamp")
	SetInt64(m, "seconds", t.Unix())
	SetInt32(m, "nanos", int32(t.Nanosecond()))
	return m
}

// TimestampFromMessage reads a schema Timestamp.
func TimestampFromMessage(m protoreflect.Message) time.Time {
	return time.Unix(GetInt64(m, "seconds"), int64(GetInt32(m, "nanos"))).UTC()
}

// DurationMessage builds a schema Duration with second resolution.
func DurationMessage(d time.Duration) *dynamicpb.Message {
	m := NewMessage("Duration")
	SetInt64(m, "seconds", int64(d/time.Second))
	return m
}

// TransactionIDMessage builds a schema TransactionID.
func TransactionIDMessage(id hedera.TransactionID) *dynamicpb.Message {
	m := NewMessage("TransactionID")
	SetMessage(m, "transactionValidStart", TimestampMessage(id.ValidStart))
	SetMessage(m, "accountID", AccountIDMessage(id.AccountID))
	if id.Scheduled {
		SetBool(m, "scheduled", true)
	}
	if id.Nonce != 0 {
		SetInt32(m, "nonce", id.Nonce)
	}
	return m
}

// TransactionIDFromMessage reads a schema TransactionID.
func TransactionIDFromMessage(m protoreflect.Message) hedera.TransactionID {
	return hedera.TransactionID{
		AccountID:  AccountIDFromMessage(GetMessage(m, "accountID")),
		ValidStart: TimestampFromMessage(GetMessage(m, "transactionValidStart")),
		Scheduled:  GetBool(m, "scheduled"),
		Nonce:      GetInt32(m, "nonce"),
	}
}

// KeyMessage builds a schema Key carrying the raw public key under the oneof
// arm matching its algorithm.
func KeyMessage(pub crypto.PublicKey) *dynamicpb.Message {
	m := NewMessage("Key")
	if pub.Kind() == crypto.KindECDSASecp256k1 {
		SetBytes(m, "ECDSASecp256k1", pub.BytesRaw())
	} else {
		SetBytes(m, "ed25519", pub.BytesRaw())
	}
	return m
}

// AccountAmountMessage builds a schema AccountAmount (a single transfer-list
// entry; negative amounts debit the account).
func AccountAmountMessage(id hedera.AccountID, amount int64) *dynamicpb.Message {
	m := NewMessage("AccountAmount")
	SetMessage(m, "accountID", AccountIDMessage(id))
	SetInt64(m, "amount", amount)
	return m
}
