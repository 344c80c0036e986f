package solana

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// Wallet represents a Solana wallet
type Wallet struct {
	privateKey solana.PrivateKey
}

// NewWallet generates a new random wallet
func NewWallet() *Wallet {
	account := solana.NewWallet()
	return &Wallet{
		privateKey: account.PrivateKey,
	}
}

// WalletFromPrivateKey creates a wallet from an existing private key
func WalletFromPrivateKey(pk solana.PrivateKey) *Wallet {
	return &Wallet{
		privateKey: pk,
	}
}

// WalletFromBase58 creates a wallet from a base58-encoded private key
func WalletFromBase58(key string) (*Wallet, error) {
	pk, err := solana.PrivateKeyFromBase58(key)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	if len(pk) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key size: expected %d, got %d", ed25519.PrivateKeySize, len(pk))
	}
	return &Wallet{privateKey: pk}, nil
}

// ParseSecret creates a wallet from secret key material in any of the
// supported textual encodings, auto-detecting which one was used:
// a JSON byte array (Solana CLI keypair format), a base58 string, or a
// hex string.
func ParseSecret(secret string) (*Wallet, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("empty secret")
	}

	if strings.HasPrefix(secret, "[") {
		var nums []int
		if err := json.Unmarshal([]byte(secret), &nums); err != nil {
			return nil, fmt.Errorf("failed to parse keypair array: %w", err)
		}
		if len(nums) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("invalid keypair size: expected %d, got %d", ed25519.PrivateKeySize, len(nums))
		}
		keypair := make([]byte, len(nums))
		for i, n := range nums {
			if n < 0 || n > 255 {
				return nil, fmt.Errorf("keypair array element %d out of byte range: %d", i, n)
			}
			keypair[i] = byte(n)
		}
		return WalletFromPrivateKey(solana.PrivateKey(keypair)), nil
	}

	if w, err := WalletFromBase58(secret); err == nil {
		return w, nil
	}

	raw, err := hex.DecodeString(secret)
	if err != nil || len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("secret is neither a keypair array, base58, nor 64-byte hex")
	}
	return WalletFromPrivateKey(solana.PrivateKey(raw)), nil
}

// PublicKey returns the wallet's public key
func (w *Wallet) PublicKey() solana.PublicKey {
	return w.privateKey.PublicKey()
}

// PrivateKey returns the wallet's private key
func (w *Wallet) PrivateKey() solana.PrivateKey {
	return w.privateKey
}

// Sign signs a message with the wallet's private key
func (w *Wallet) Sign(message []byte) ([]byte, error) {
	sig, err := w.privateKey.Sign(message)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	return sig[:], nil
}

// String returns the public key as a string
func (w *Wallet) String() string {
	return w.PublicKey().String()
}
