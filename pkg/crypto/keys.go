package crypto

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Kind selects the signature algorithm of a key pair.
type Kind int

const (
	// KindEd25519 is an Ed25519 key pair (32-byte seed, 32-byte public key,
	// 64-byte signatures).
	KindEd25519 Kind = iota
	// KindECDSASecp256k1 is an ECDSA key pair on the secp256k1 curve
	// (32-byte scalar, 33-byte compressed public key, 64-byte r||s
	// signatures over the keccak-256 digest of the message).
	KindECDSASecp256k1
)

func (k Kind) String() string {
	if k == KindECDSASecp256k1 {
		return "ECDSA_SECP256K1"
	}
	return "ED25519"
}

// DER prefixes for the fixed-layout key encodings the network tooling uses.
// The suffix after each prefix is the raw key material.
var (
	derPrefixEd25519Private = mustHex("302e020100300506032b657004220420")
	derPrefixEd25519Public  = mustHex("302a300506032b6570032100")
	derPrefixECDSAPrivate   = mustHex("3030020100300706052b8104000a04220420")
	derPrefixECDSAPublic    = mustHex("302d300706052b8104000a032200")
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// PrivateKey is a signing key of either supported algorithm.
type PrivateKey struct {
	kind Kind
	ed   ed25519.PrivateKey
	ec   []byte // 32-byte secp256k1 scalar
}

// PublicKey is the verification half of a key pair.
type PublicKey struct {
	kind Kind
	ed   ed25519.PublicKey
	ec   []byte // 33-byte compressed secp256k1 point
}

// GenerateEd25519PrivateKey creates a fresh Ed25519 key pair.
func GenerateEd25519PrivateKey() (PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return PrivateKey{kind: KindEd25519, ed: priv}, nil
}

// GenerateECDSAPrivateKey creates a fresh secp256k1 key pair.
func GenerateECDSAPrivateKey() (PrivateKey, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return PrivateKey{}, fmt.Errorf("generate secp256k1 key: %w", err)
	}
	return PrivateKey{kind: KindECDSASecp256k1, ec: ethcrypto.FromECDSA(key)}, nil
}

// PrivateKeyFromString parses a hex-encoded private key. DER-prefixed input
// selects the algorithm from the prefix; bare 32-byte material is taken as an
// Ed25519 seed (use PrivateKeyFromStringECDSA for raw secp256k1 scalars).
func PrivateKeyFromString(s string) (PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return PrivateKey{}, fmt.Errorf("invalid private key hex: %w", err)
	}
	switch {
	case bytes.HasPrefix(raw, derPrefixEd25519Private) && len(raw) == len(derPrefixEd25519Private)+ed25519.SeedSize:
		return ed25519FromSeed(raw[len(derPrefixEd25519Private):])
	case bytes.HasPrefix(raw, derPrefixECDSAPrivate) && len(raw) == len(derPrefixECDSAPrivate)+32:
		return ecdsaFromScalar(raw[len(derPrefixECDSAPrivate):])
	case len(raw) == ed25519.SeedSize:
		return ed25519FromSeed(raw)
	}
	return PrivateKey{}, errors.New("unrecognized private key encoding")
}

// PrivateKeyFromStringECDSA parses a hex-encoded raw secp256k1 scalar.
func PrivateKeyFromStringECDSA(s string) (PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return PrivateKey{}, fmt.Errorf("invalid private key hex: %w", err)
	}
	if len(raw) == len(derPrefixECDSAPrivate)+32 && bytes.HasPrefix(raw, derPrefixECDSAPrivate) {
		raw = raw[len(derPrefixECDSAPrivate):]
	}
	return ecdsaFromScalar(raw)
}

func ed25519FromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return PrivateKey{}, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return PrivateKey{kind: KindEd25519, ed: ed25519.NewKeyFromSeed(seed)}, nil
}

func ecdsaFromScalar(scalar []byte) (PrivateKey, error) {
	key, err := ethcrypto.ToECDSA(scalar)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("invalid secp256k1 scalar: %w", err)
	}
	return PrivateKey{kind: KindECDSASecp256k1, ec: ethcrypto.FromECDSA(key)}, nil
}

// Kind returns the key's algorithm.
func (k PrivateKey) Kind() Kind { return k.kind }

// Sign signs the given message. Ed25519 signs the message directly; ECDSA
// signs the keccak-256 digest and returns the 64-byte r||s form without the
// recovery byte.
func (k PrivateKey) Sign(message []byte) ([]byte, error) {
	switch k.kind {
	case KindEd25519:
		return ed25519.Sign(k.ed, message), nil
	case KindECDSASecp256k1:
		key, err := ethcrypto.ToECDSA(k.ec)
		if err != nil {
			return nil, err
		}
		sig, err := ethcrypto.Sign(ethcrypto.Keccak256(message), key)
		if err != nil {
			return nil, fmt.Errorf("secp256k1 sign: %w", err)
		}
		return sig[:64], nil
	}
	return nil, fmt.Errorf("unsupported key kind %v", k.kind)
}

// PublicKey derives the verification key.
func (k PrivateKey) PublicKey() PublicKey {
	switch k.kind {
	case KindEd25519:
		return PublicKey{kind: KindEd25519, ed: k.ed.Public().(ed25519.PublicKey)}
	case KindECDSASecp256k1:
		key, err := ethcrypto.ToECDSA(k.ec)
		if err != nil {
			return PublicKey{kind: KindECDSASecp256k1}
		}
		return PublicKey{kind: KindECDSASecp256k1, ec: ethcrypto.CompressPubkey(&key.PublicKey)}
	}
	return PublicKey{}
}

// BytesRaw returns the raw key material: the Ed25519 seed or the secp256k1
// scalar, 32 bytes either way.
func (k PrivateKey) BytesRaw() []byte {
	if k.kind == KindEd25519 {
		return bytes.Clone(k.ed.Seed())
	}
	return bytes.Clone(k.ec)
}

// BytesDER returns the fixed-layout DER encoding of the key.
func (k PrivateKey) BytesDER() []byte {
	if k.kind == KindEd25519 {
		return append(bytes.Clone(derPrefixEd25519Private), k.ed.Seed()...)
	}
	return append(bytes.Clone(derPrefixECDSAPrivate), k.ec...)
}

// String returns the hex form of the DER encoding.
func (k PrivateKey) String() string { return hex.EncodeToString(k.BytesDER()) }

// Kind returns the key's algorithm.
func (p PublicKey) Kind() Kind { return p.kind }

// BytesRaw returns the raw public key: 32 bytes for Ed25519, the 33-byte
// compressed point for secp256k1. This is also the signature-pair prefix the
// transaction signature map is keyed by.
func (p PublicKey) BytesRaw() []byte {
	if p.kind == KindEd25519 {
		return bytes.Clone(p.ed)
	}
	return bytes.Clone(p.ec)
}

// BytesDER returns the fixed-layout DER encoding of the key.
func (p PublicKey) BytesDER() []byte {
	if p.kind == KindEd25519 {
		return append(bytes.Clone(derPrefixEd25519Public), p.ed...)
	}
	return append(bytes.Clone(derPrefixECDSAPublic), p.ec...)
}

// String returns the hex form of the raw public key.
func (p PublicKey) String() string { return hex.EncodeToString(p.BytesRaw()) }

// Equal reports whether two public keys are the same key.
func (p PublicKey) Equal(other PublicKey) bool {
	return p.kind == other.kind && bytes.Equal(p.BytesRaw(), other.BytesRaw())
}

// Verify reports whether sig is a valid signature of message under this key.
func (p PublicKey) Verify(message, sig []byte) bool {
	switch p.kind {
	case KindEd25519:
		return ed25519.Verify(p.ed, message, sig)
	case KindECDSASecp256k1:
		if len(sig) < 64 {
			return false
		}
		return ethcrypto.VerifySignature(p.ec, ethcrypto.Keccak256(message), sig[:64])
	}
	return false
}
