// Package secrets seals values before they reach client storage, so a copied
// storage file or Redis dump does not expose session tokens.
//
// A Sealer derives a 32-byte key from an application key and a scope string
// with HKDF-SHA-256 and encrypts with AES-256-GCM. The random nonce is
// prepended to the ciphertext and the result is encoded as unpadded
// URL-safe base64, which keeps sealed values valid storage text.
//
// Different scopes (for example different key prefixes) yield unrelated
// keys from the same application key.
//
// # Usage
//
//	appKey, _ := secrets.GenerateKey()
//	sealer, err := secrets.NewSealer(appKey, "income_clarity_")
//	if err != nil {
//	    // invalid key
//	}
//
//	sealed, _ := sealer.Seal(`{"session_token":"..."}`)
//	plain, err := sealer.Open(sealed)
//
// Keys are usually configured as base64 text; ParseKey decodes and checks
// them.
//
// # Error Handling
//
// Errors wrap a package sentinel such as ErrInvalidKey or
// ErrDecryptionFailed. Use errors.Is to match them.
package secrets
