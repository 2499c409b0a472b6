// Package vault implements symmetric encryption for stored integration
// secrets (bot tokens, access tokens, tenant API keys). A single
// process-wide key is derived from the configured secret; the key is
// immutable after construction, so a Vault is safe for unsynchronized
// concurrent use.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

// ErrDecrypt is returned when a ciphertext is malformed or was produced
// under a different key. Callers that scan candidate secrets (the telegram
// integration resolver) must treat this as "candidate does not match", not
// as a fatal error.
var ErrDecrypt = errors.New("vault: cannot decrypt")

// keyLen is the AES-256 key size.
const keyLen = 32

// Vault encrypts and decrypts short secrets with AES-256-GCM. Ciphertexts
// are URL-safe base64 of nonce||sealed.
type Vault struct {
	aead cipher.AEAD
}

// New derives the cipher key from secret by padding with zero bytes or
// truncating to 32 bytes, mirroring how previously stored ciphertexts were
// produced. An empty secret is rejected.
func New(secret string) (*Vault, error) {
	if secret == "" {
		return nil, errors.New("vault: empty encryption key")
	}
	key := make([]byte, keyLen)
	copy(key, secret)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Vault{aead: aead}, nil
}

// Encrypt seals plaintext under the vault key with a fresh random nonce.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := v.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It returns ErrDecrypt for any ciphertext that
// is not valid base64, is too short to carry a nonce, or fails
// authentication (wrong key or tampered data).
func (v *Vault) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrDecrypt
	}
	ns := v.aead.NonceSize()
	if len(raw) < ns {
		return "", ErrDecrypt
	}
	plain, err := v.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
