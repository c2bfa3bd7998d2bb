package secrets

import "errors"

var (
	// ErrInvalidKey indicates a key that is not KeySize bytes long
	ErrInvalidKey = errors.New("secrets.invalid_key")

	// ErrKeyDerivationFailed indicates HKDF could not produce a key
	ErrKeyDerivationFailed = errors.New("secrets.key_derivation_failed")

	// ErrEncryptionFailed indicates the cipher could not seal a value
	ErrEncryptionFailed = errors.New("secrets.encryption_failed")

	// ErrDecryptionFailed indicates a value that was not sealed with this key and scope, or was tampered with
	ErrDecryptionFailed = errors.New("secrets.decryption_failed")

	// ErrInvalidCiphertext indicates a value that is not sealed text at all
	ErrInvalidCiphertext = errors.New("secrets.invalid_ciphertext")
)
