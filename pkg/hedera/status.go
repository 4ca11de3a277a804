package hedera

import "fmt"

// Status is a network response code: the precheck code a node returns
// synchronously on submission, and the consensus status carried by receipts.
// The numeric values belong to the externally versioned wire schema; only the
// subset the SDK interprets is named here, unknown values pass through intact.
type Status uint32

const (
	StatusOK                       Status = 0
	StatusInvalidTransaction       Status = 1
	StatusPayerAccountNotFound     Status = 2
	StatusInvalidNodeAccount       Status = 3
	StatusTransactionExpired       Status = 4
	StatusInvalidTransactionStart  Status = 5
	StatusInvalidTransactionDur    Status = 6
	StatusInvalidSignature         Status = 7
	StatusMemoTooLong              Status = 8
	StatusInsufficientTxFee        Status = 9
	StatusInsufficientPayerBalance Status = 10
	StatusDuplicateTransaction     Status = 11
	StatusBusy                     Status = 12
	StatusNotSupported             Status = 13
	StatusInvalidFileID            Status = 14
	StatusInvalidAccountID         Status = 15
	StatusInvalidContractID        Status = 16
	StatusInvalidTransactionID     Status = 17
	StatusReceiptNotFound          Status = 18
	StatusRecordNotFound           Status = 19
	StatusUnknown                  Status = 21
	StatusSuccess                  Status = 22
	StatusFailInvalid              Status = 23
	StatusFailFee                  Status = 24
	StatusFailBalance              Status = 25
	StatusKeyRequired              Status = 26
	StatusBadEncoding              Status = 27
	StatusPlatformNotActive        Status = 67
	StatusKeyPrefixMismatch        Status = 68
	StatusPlatformTxNotCreated     Status = 69
	StatusInvalidTopicID           Status = 150
)

var statusNames = map[Status]string{
	StatusOK:                       "OK",
	StatusInvalidTransaction:       "INVALID_TRANSACTION",
	StatusPayerAccountNotFound:     "PAYER_ACCOUNT_NOT_FOUND",
	StatusInvalidNodeAccount:       "INVALID_NODE_ACCOUNT",
	StatusTransactionExpired:       "TRANSACTION_EXPIRED",
	StatusInvalidTransactionStart:  "INVALID_TRANSACTION_START",
	StatusInvalidTransactionDur:    "INVALID_TRANSACTION_DURATION",
	StatusInvalidSignature:         "INVALID_SIGNATURE",
	StatusMemoTooLong:              "MEMO_TOO_LONG",
	StatusInsufficientTxFee:        "INSUFFICIENT_TX_FEE",
	StatusInsufficientPayerBalance: "INSUFFICIENT_PAYER_BALANCE",
	StatusDuplicateTransaction:     "DUPLICATE_TRANSACTION",
	StatusBusy:                     "BUSY",
	StatusNotSupported:             "NOT_SUPPORTED",
	StatusInvalidFileID:            "INVALID_FILE_ID",
	StatusInvalidAccountID:         "INVALID_ACCOUNT_ID",
	StatusInvalidContractID:        "INVALID_CONTRACT_ID",
	StatusInvalidTransactionID:     "INVALID_TRANSACTION_ID",
	StatusReceiptNotFound:          "RECEIPT_NOT_FOUND",
	StatusRecordNotFound:           "RECORD_NOT_FOUND",
	StatusUnknown:                  "UNKNOWN",
	StatusSuccess:                  "SUCCESS",
	StatusFailInvalid:              "FAIL_INVALID",
	StatusFailFee:                  "FAIL_FEE",
	StatusFailBalance:              "FAIL_BALANCE",
	StatusKeyRequired:              "KEY_REQUIRED",
	StatusBadEncoding:              "BAD_ENCODING",
	StatusPlatformNotActive:        "PLATFORM_NOT_ACTIVE",
	StatusKeyPrefixMismatch:        "KEY_PREFIX_MISMATCH",
	StatusPlatformTxNotCreated:     "PLATFORM_TRANSACTION_NOT_CREATED",
	StatusInvalidTopicID:           "INVALID_TOPIC_ID",
}

// String returns the schema name of the status, or the numeric value for
// codes this SDK version does not name.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_%d", uint32(s))
}

// IsRetryable reports whether the code indicates transient node
// unavailability rather than a semantically invalid request. Only busy and
// the two platform-startup codes qualify; everything else non-OK is terminal.
func (s Status) IsRetryable() bool {
	switch s {
	case StatusBusy, StatusPlatformNotActive, StatusPlatformTxNotCreated:
		return true
	}
	return false
}
