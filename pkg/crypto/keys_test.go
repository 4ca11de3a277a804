package crypto

import (
	"encoding/hex"
	"testing"
)

func TestEd25519SignVerify(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	msg := []byte("frozen transaction body bytes")
	sig, err := key.Sign(msg)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if len(sig) != 64 {
		t.Fatalf("expected 64-byte signature, got %d", len(sig))
	}
	if !key.PublicKey().Verify(msg, sig) {
		t.Fatal("signature did not verify")
	}
	if key.PublicKey().Verify([]byte("other"), sig) {
		t.Fatal("signature verified against a different message")
	}
}

func TestECDSASignVerify(t *testing.T) {
	key, err := GenerateECDSAPrivateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	msg := []byte("frozen transaction body bytes")
	sig, err := key.Sign(msg)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if len(sig) != 64 {
		t.Fatalf("expected 64-byte r||s signature, got %d", len(sig))
	}
	if !key.PublicKey().Verify(msg, sig) {
		t.Fatal("signature did not verify")
	}
}

func TestPrivateKeyStringRoundTrip(t *testing.T) {
	for _, gen := range []func() (PrivateKey, error){GenerateEd25519PrivateKey, GenerateECDSAPrivateKey} {
		key, err := gen()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		parsed, err := PrivateKeyFromString(key.String())
		if err != nil {
			t.Fatalf("parse of DER string failed: %v", err)
		}
		if parsed.Kind() != key.Kind() {
			t.Fatalf("kind changed: %v -> %v", key.Kind(), parsed.Kind())
		}
		if !parsed.PublicKey().Equal(key.PublicKey()) {
			t.Fatal("public key changed across round trip")
		}
	}
}

func TestPrivateKeyFromStringBareSeed(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	// The 0x prefix must be tolerated.
	parsed, err := PrivateKeyFromString("0x" + hex.EncodeToString(key.BytesRaw()))
	if err != nil {
		t.Fatalf("parse of bare seed failed: %v", err)
	}
	if parsed.Kind() != KindEd25519 {
		t.Fatalf("expected bare 32 bytes to parse as ed25519, got %v", parsed.Kind())
	}
	if !parsed.PublicKey().Equal(key.PublicKey()) {
		t.Fatal("public key changed across bare-seed round trip")
	}
}

func TestPrivateKeyFromStringRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "zz", "0102", "0x0102030405"} {
		if _, err := PrivateKeyFromString(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}
