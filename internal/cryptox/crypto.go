// Package cryptox wraps the primitives gliphic needs: argon2id key
// derivation, verifiers and AES-256-GCM sealing.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeyLen is the size of every symmetric key used here (AES-256).
	KeyLen = 32
	// NonceLen is the AES-GCM nonce size, also the token IV size.
	NonceLen = 12
	// SaltLen is the size of the per-user argon2 salt.
	SaltLen = 16
)

var ErrShortCiphertext = errors.New("ciphertext is too short")

// MakeVerifier returns the value the server keeps to check a derived key
// without learning it.
func MakeVerifier(dataKey []byte) []byte {
	hash := sha256.Sum256(dataKey)
	return hash[:]
}

// DeriveDataKey stretches the password into the per-user data encryption
// key.
func DeriveDataKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeyLen)
}

// DeriveShareKey stretches a passphrase agreed out of band into the key a
// group key is sealed under while it is handed to another member. The raw
// group id serves as salt.
func DeriveShareKey(passphrase []byte, rawGroupID []byte) []byte {
	return argon2.IDKey(passphrase, rawGroupID, 1, 64*1024, 4, KeyLen)
}

// DeriveServerKey turns a configured secret of any length into an AES-256 key.
func DeriveServerKey(secret string) []byte {
	hash := sha256.Sum256([]byte(secret))
	return hash[:]
}

// NewKey returns a fresh random AES-256 key.
func NewKey() []byte {
	return common.GenerateRandByteArray(KeyLen)
}

// NewNonce returns a fresh random GCM nonce.
func NewNonce() []byte {
	return common.GenerateRandByteArray(NonceLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under key with the given nonce and additional data.
func Seal(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce size %d", len(nonce))
	}
	return aesgcm.Seal(nil, nonce, plaintext, aad), nil
}

// Open reverses Seal. A wrong key, nonce or aad, or any tampering, makes it
// fail.
func Open(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce size %d", len(nonce))
	}
	return aesgcm.Open(nil, nonce, ciphertext, aad)
}

// Encrypt seals plaintext under a fresh random nonce and returns both.
func Encrypt(key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	nonce = NewNonce()
	ciphertext, err = Seal(key, nonce, plaintext, nil)
	if err != nil {
		return nil, nil, err
	}
	return ciphertext, nonce, nil
}

// SealPrefixed returns nonce || Seal(key, nonce, plaintext, aad) with a fresh
// nonce.
func SealPrefixed(key, plaintext, aad []byte) ([]byte, error) {
	nonce := NewNonce()
	ct, err := Seal(key, nonce, plaintext, aad)
	if err != nil {
		return nil, err
	}
	return append(nonce, ct...), nil
}

// OpenPrefixed reverses SealPrefixed.
func OpenPrefixed(key, blob, aad []byte) ([]byte, error) {
	if len(blob) < NonceLen {
		return nil, ErrShortCiphertext
	}
	return Open(key, blob[:NonceLen], blob[NonceLen:], aad)
}
