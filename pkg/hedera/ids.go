package hedera

import (
	"fmt"
	"strconv"
	"strings"
)

// AccountID identifies an account as a shard.realm.num triple.
// The zero value is a valid identifier only for the sentinel account 0.0.0;
// construct real identifiers with NewAccountID or AccountIDFromString.
type AccountID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewAccountID builds an AccountID from its three components.
func NewAccountID(shard, realm, num uint64) AccountID {
	return AccountID{Shard: shard, Realm: realm, Num: num}
}

// AccountIDFromString parses the canonical "shard.realm.num" form.
func AccountIDFromString(s string) (AccountID, error) {
	shard, realm, num, err := parseTriple(s)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid account ID %q: %w", s, err)
	}
	return AccountID{Shard: shard, Realm: realm, Num: num}, nil
}

// String returns the canonical "shard.realm.num" form.
func (id AccountID) String() string { return formatTriple(id.Shard, id.Realm, id.Num) }

// IsZero reports whether the identifier is the zero value.
func (id AccountID) IsZero() bool { return id == AccountID{} }

// TokenID identifies a token as a shard.realm.num triple.
type TokenID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewTokenID builds a TokenID from its three components.
func NewTokenID(shard, realm, num uint64) TokenID {
	return TokenID{Shard: shard, Realm: realm, Num: num}
}

// TokenIDFromString parses the canonical "shard.realm.num" form.
func TokenIDFromString(s string) (TokenID, error) {
	shard, realm, num, err := parseTriple(s)
	if err != nil {
		return TokenID{}, fmt.Errorf("invalid token ID %q: %w", s, err)
	}
	return TokenID{Shard: shard, Realm: realm, Num: num}, nil
}

func (id TokenID) String() string { return formatTriple(id.Shard, id.Realm, id.Num) }

// TopicID identifies a consensus topic as a shard.realm.num triple.
type TopicID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewTopicID builds a TopicID from its three components.
func NewTopicID(shard, realm, num uint64) TopicID {
	return TopicID{Shard: shard, Realm: realm, Num: num}
}

// TopicIDFromString parses the canonical "shard.realm.num" form.
func TopicIDFromString(s string) (TopicID, error) {
	shard, realm, num, err := parseTriple(s)
	if err != nil {
		return TopicID{}, fmt.Errorf("invalid topic ID %q: %w", s, err)
	}
	return TopicID{Shard: shard, Realm: realm, Num: num}, nil
}

func (id TopicID) String() string { return formatTriple(id.Shard, id.Realm, id.Num) }

// FileID identifies a file as a shard.realm.num triple.
type FileID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewFileID builds a FileID from its three components.
func NewFileID(shard, realm, num uint64) FileID {
	return FileID{Shard: shard, Realm: realm, Num: num}
}

// FileIDFromString parses the canonical "shard.realm.num" form.
func FileIDFromString(s string) (FileID, error) {
	shard, realm, num, err := parseTriple(s)
	if err != nil {
		return FileID{}, fmt.Errorf("invalid file ID %q: %w", s, err)
	}
	return FileID{Shard: shard, Realm: realm, Num: num}, nil
}

func (id FileID) String() string { return formatTriple(id.Shard, id.Realm, id.Num) }

// ContractID identifies a smart contract instance as a shard.realm.num triple.
type ContractID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewContractID builds a ContractID from its three components.
func NewContractID(shard, realm, num uint64) ContractID {
	return ContractID{Shard: shard, Realm: realm, Num: num}
}

// ContractIDFromString parses the canonical "shard.realm.num" form.
func ContractIDFromString(s string) (ContractID, error) {
	shard, realm, num, err := parseTriple(s)
	if err != nil {
		return ContractID{}, fmt.Errorf("invalid contract ID %q: %w", s, err)
	}
	return ContractID{Shard: shard, Realm: realm, Num: num}, nil
}

func (id ContractID) String() string { return formatTriple(id.Shard, id.Realm, id.Num) }

func formatTriple(shard, realm, num uint64) string {
	return fmt.Sprintf("%d.%d.%d", shard, realm, num)
}

func parseTriple(s string) (shard, realm, num uint64, err error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected shard.realm.num")
	}
	vals := make([]uint64, 3)
	for i, p := range parts {
		vals[i], err = strconv.ParseUint(p, 10, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("component %d: %w", i, err)
		}
	}
	return vals[0], vals[1], vals[2], nil
}
