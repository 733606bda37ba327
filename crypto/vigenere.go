// Package crypto provides the opaque byte transforms applied to payloads
// before embedding and after extraction. The codec itself never sees keys.
package crypto

import (
	"fmt"
)

// Cipher is a reversible byte transform over payloads.
type Cipher interface {
	Encrypt(plaintext []byte) []byte
	Decrypt(ciphertext []byte) []byte
}

// ExtendedVigenere is a Vigenère cipher over the full byte range:
// ciphertext[i] = (plaintext[i] + key[i mod len]) mod 256.
type ExtendedVigenere struct {
	key []byte
}

// NewExtendedVigenere builds a cipher from the given key. An empty key
// yields the identity transform.
func NewExtendedVigenere(key string) *ExtendedVigenere {
	return &ExtendedVigenere{key: []byte(key)}
}

// Encrypt applies the forward transform to a copy of plaintext.
func (ev *ExtendedVigenere) Encrypt(plaintext []byte) []byte {
	if len(ev.key) == 0 {
		return plaintext
	}

	ciphertext := make([]byte, len(plaintext))
	for i, b := range plaintext {
		ciphertext[i] = b + ev.key[i%len(ev.key)]
	}
	return ciphertext
}

// Decrypt reverses Encrypt.
func (ev *ExtendedVigenere) Decrypt(ciphertext []byte) []byte {
	if len(ev.key) == 0 {
		return ciphertext
	}

	plaintext := make([]byte, len(ciphertext))
	for i, b := range ciphertext {
		plaintext[i] = b - ev.key[i%len(ev.key)]
	}
	return plaintext
}

// ValidateKey checks that the key is usable for the extended Vigenère.
func ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("key cannot be empty")
	}
	if len(key) > 256 {
		return fmt.Errorf("key length cannot exceed 256 characters")
	}
	return nil
}
