package solana

import (
	"encoding/hex"
	"encoding/json"
	"testing"
)

func TestParseSecretBase58(t *testing.T) {
	w := NewWallet()
	parsed, err := ParseSecret(w.PrivateKey().String())
	if err != nil {
		t.Fatalf("ParseSecret(base58): %v", err)
	}
	if !parsed.PublicKey().Equals(w.PublicKey()) {
		t.Errorf("parsed key derives %s, want %s", parsed.PublicKey(), w.PublicKey())
	}
}

func TestParseSecretKeypairArray(t *testing.T) {
	w := NewWallet()
	nums := make([]int, len(w.PrivateKey()))
	for i, b := range w.PrivateKey() {
		nums[i] = int(b)
	}
	raw, err := json.Marshal(nums)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseSecret(string(raw))
	if err != nil {
		t.Fatalf("ParseSecret(array): %v", err)
	}
	if !parsed.PublicKey().Equals(w.PublicKey()) {
		t.Errorf("parsed key derives %s, want %s", parsed.PublicKey(), w.PublicKey())
	}
}

func TestParseSecretHex(t *testing.T) {
	w := NewWallet()
	parsed, err := ParseSecret(hex.EncodeToString(w.PrivateKey()))
	if err != nil {
		t.Fatalf("ParseSecret(hex): %v", err)
	}
	if !parsed.PublicKey().Equals(w.PublicKey()) {
		t.Errorf("parsed key derives %s, want %s", parsed.PublicKey(), w.PublicKey())
	}
}

func TestParseSecretRejectsGarbage(t *testing.T) {
	for _, secret := range []string{"", "   ", "not-a-key", "[1,2,3]", "deadbeef"} {
		if _, err := ParseSecret(secret); err == nil {
			t.Errorf("ParseSecret(%q): expected error", secret)
		}
	}
}

func TestSignVerifiableWithPublicKey(t *testing.T) {
	w := NewWallet()
	msg := []byte("solfleet")

	sig, err := w.Sign(msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != 64 {
		t.Errorf("signature length = %d, want 64", len(sig))
	}
}
