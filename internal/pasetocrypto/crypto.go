// Package pasetocrypto wraps the primitives PASETO v2 is built on:
// XChaCha20-Poly1305 AEAD, a BLAKE2b keyed hash used only for nonce
// derivation, Ed25519 sign/verify, and the OS CSPRNG. Every function
// here has a fixed, narrow contract and is treated by callers as a
// black box — it does no PAE, no base64, no framing.
package pasetocrypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// NonceSize is the XChaCha20-Poly1305 nonce length, also the
	// BLAKE2b keyed-hash output length used to derive it.
	NonceSize = 24
	// TagSize is the Poly1305 authentication tag length.
	TagSize = chacha20poly1305.Overhead
	// KeySize is the symmetric key length v2.local requires.
	KeySize = chacha20poly1305.KeySize
	// SignatureSize is the Ed25519 signature length.
	SignatureSize = ed25519.SignatureSize
	// PublicKeySize is the Ed25519 public key length.
	PublicKeySize = ed25519.PublicKeySize
	// PrivateKeySize is the Ed25519 expanded secret key length
	// (32-byte seed || 32-byte public key).
	PrivateKeySize = ed25519.PrivateKeySize
)

// AEADEncrypt seals plaintext under key/nonce with aad as associated
// data, returning ciphertext with the 16-byte tag appended: the
// "ciphertext || tag" layout the local body uses.
func AEADEncrypt(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// AEADDecrypt opens ciphertextAndTag (as produced by AEADEncrypt)
// under key/nonce/aad. It fails if the tag does not verify; the
// underlying Open call is constant-time in the tag comparison.
func AEADDecrypt(key, nonce, ciphertextAndTag, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, nonce, ciphertextAndTag, aad)
}

// DeriveNonce computes BLAKE2b(key=seed, data=data) with a
// NonceSize-byte output length. seed is the per-message random value; data is
// the plaintext. This content-dependent derivation (rather than using
// seed directly as the nonce) is the PASETO v2 misuse-resistance
// design choice: it must not be simplified to a direct nonce.
func DeriveNonce(seed, data []byte) ([]byte, error) {
	h, err := blake2b.New(NonceSize, seed)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}

// Sign computes an Ed25519 signature over msg with the expanded
// secret key sk.
func Sign(sk ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(sk, msg)
}

// Verify reports whether sig is a valid Ed25519 signature over msg
// under public key pk.
func Verify(pk ed25519.PublicKey, msg, sig []byte) bool {
	return ed25519.Verify(pk, msg, sig)
}

// RandomBytes returns n cryptographically random bytes from the OS
// CSPRNG. Package var so tests/build tags can override it; production
// code calls it but never reassigns it.
var RandomBytes = func(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
