package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// Demo-grade helpers matching the frontend's client-side conveniences. Keys are
// derived from public wallet addresses, so nothing here is a security boundary;
// the real cryptography lives in the wallet and the network.

const fieldSuffix = "field"

// Hash returns the hex SHA-256 of data
func Hash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// deriveKey stretches an arbitrary passphrase to an AES-256 key
func deriveKey(passphrase string) []byte {
	key := sha256.Sum256([]byte(passphrase))
	return key[:]
}

// Encrypt encrypts plaintext with a passphrase-derived key (AES-256-GCM) and
// returns base64(nonce || ciphertext)
func Encrypt(plaintext, passphrase string) (string, error) {
	block, err := aes.NewCipher(deriveKey(passphrase))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. A wrong passphrase or mangled payload is an error.
func Decrypt(encoded, passphrase string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(deriveKey(passphrase))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(raw) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}

	plaintext, err := gcm.Open(nil, raw[:gcm.NonceSize()], raw[gcm.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// GenerateID returns a random 16-byte hex identifier, the client-generated ID
// format for messageId/pollId/noteId
func GenerateID() (string, error) {
	return randomHex(16)
}

// GenerateSecret returns a random 32-byte hex secret
func GenerateSecret() (string, error) {
	return randomHex(32)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// StringToField hashes a string into Leo field-literal form. The first 62 hex
// chars keep the value under the ~253-bit field modulus.
func StringToField(s string) string {
	return Hash(s)[:62] + fieldSuffix
}

// FieldToHash strips the field suffix from a Leo field literal
func FieldToHash(field string) string {
	return strings.TrimSuffix(field, fieldSuffix)
}

// CreateCommitment binds a value to a secret
func CreateCommitment(value, secret string) string {
	return Hash(value + secret)
}

// VerifyCommitment checks a value/secret pair against a commitment
func VerifyCommitment(value, secret, commitment string) bool {
	return CreateCommitment(value, secret) == commitment
}
