// +build gofuzz

package paseto

import (
	"bytes"
	"crypto/ed25519"
)

var (
	nonce        = bytes.Repeat([]byte("-"), 24)
	localKey     = bytes.Repeat([]byte("*"), 32)
	publicSeed   = bytes.Repeat([]byte("#"), 32)
	publicSecret ed25519.PrivateKey
	publicPub    ed25519.PublicKey
)

func init() {
	publicSecret = ed25519.NewKeyFromSeed(publicSeed)
	publicPub = publicSecret.Public().(ed25519.PublicKey)
}

// FuzzLocal round-trips Encrypt/Decrypt with a fixed nonce, to avoid
// pounding on the OS CSPRNG and to keep crashes reproducible.
func FuzzLocal(data []byte) int {
	SetLocalTestNonce(nonce)
	defer SetLocalTestNonce(nil)

	payload := data
	var footer []byte
	if len(data) > 0 && data[0]%2 == 1 {
		footer = data
	}
	token, err := LocalEncrypt(localKey, payload, footer)
	if err != nil {
		panic(err)
	}
	p, f, err := LocalDecrypt(localKey, token)
	if err != nil {
		panic("round trip failed: " + err.Error())
	}
	if !bytes.Equal(p, payload) {
		panic("round trip p failed")
	}
	if !bytes.Equal(f, footer) {
		panic("round trip f failed")
	}

	// TODO: test against an external implementation, e.g. o1egl
	// TODO: negative tests
	return 0
}

// FuzzPublic round-trips Sign/Verify for arbitrary messages/footers.
func FuzzPublic(data []byte) int {
	message := data
	var footer []byte
	if len(data) > 0 && data[0]%2 == 1 {
		footer = data
	}
	token, err := PublicSign(publicSecret, message, footer)
	if err != nil {
		panic(err)
	}
	m, f, err := PublicVerify(publicPub, token)
	if err != nil {
		panic("round trip failed: " + err.Error())
	}
	if !bytes.Equal(m, message) {
		panic("round trip m failed")
	}
	if !bytes.Equal(f, footer) {
		panic("round trip f failed")
	}
	return 0
}
