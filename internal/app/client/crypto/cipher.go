// Package crypto seals vault secrets on the client before they are uploaded.
// The server only ever sees the envelope produced by Encrypt.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	envelopeVersion byte = 1

	saltSize  = 16
	nonceSize = 12
	headerLen = 1 + saltSize + nonceSize

	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
)

var (
	ErrDecryption = errors.New("unable to decrypt secret")
	ErrEmptyKey   = errors.New("master password is empty")
	ErrEmptyText  = errors.New("nothing to encrypt")
)

// Encrypt seals plaintext under a key derived from passphrase with Argon2id.
// Every call draws a fresh salt and nonce, so equal inputs give different
// envelopes. The result is base64(version | salt | nonce | sealed).
// An empty plaintext is refused since Decrypt never yields one.
func Encrypt(plaintext, passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyKey
	}
	if plaintext == "" {
		return "", ErrEmptyText
	}

	header := make([]byte, headerLen)
	header[0] = envelopeVersion
	if _, err := io.ReadFull(rand.Reader, header[1:]); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	salt, nonce := header[1:1+saltSize], header[1+saltSize:]

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	sealed := gcm.Seal(header, nonce, []byte(plaintext), header[:1])
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope made by Encrypt. A malformed envelope, a wrong
// passphrase and an empty plaintext all give ErrDecryption.
func Decrypt(envelope, passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyKey
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil || len(raw) <= headerLen || raw[0] != envelopeVersion {
		return "", ErrDecryption
	}
	salt, nonce := raw[1:1+saltSize], raw[1+saltSize:headerLen]

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	plain, err := gcm.Open(nil, nonce, raw[headerLen:], raw[:1])
	if err != nil || len(plain) == 0 {
		return "", ErrDecryption
	}
	return string(plain), nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(passphrase), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
