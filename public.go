package paseto

import (
	"crypto/ed25519"

	"github.com/josharian/paseto2/internal/pasetocrypto"
)

var v2PublicHeader = []byte("v2.public.")

// PublicSign builds a v2.public[.footer] token by Ed25519-signing the
// PAE of header, message, and footer.
func PublicSign(secretKey, message, footer []byte) ([]byte, error) {
	if len(secretKey) != pasetocrypto.PrivateKeySize {
		return nil, newErr(ConfigError, "ed25519 secret key must be 64 bytes")
	}

	// 1. m2 = PAE(header, message, footer).
	m2 := pae(v2PublicHeader, message, footer)

	// 2. sig = Ed25519-Sign(secretKey, m2); always 64 bytes.
	sig := pasetocrypto.Sign(ed25519.PrivateKey(secretKey), m2)

	// 3. body = message || sig.
	body := make([]byte, 0, len(message)+len(sig))
	body = append(body, message...)
	body = append(body, sig...)

	// 4. header || b64(body)[, "." || b64(footer)] iff footer non-empty.
	return assembleToken(v2PublicHeader, body, footer), nil
}

// PublicVerify parses a v2.public[.footer] token and checks its
// Ed25519 signature.
func PublicVerify(publicKey, token []byte) (message, footer []byte, err error) {
	if len(publicKey) != pasetocrypto.PublicKeySize {
		return nil, nil, newErr(ConfigError, "ed25519 public key must be 32 bytes")
	}

	body, footer, err := splitToken(v2PublicHeader, token)
	if err != nil {
		return nil, nil, err
	}
	if len(body) < pasetocrypto.SignatureSize {
		return nil, nil, newErr(MalformedToken, "public body shorter than minimum length")
	}

	splitAt := len(body) - pasetocrypto.SignatureSize
	message = body[:splitAt]
	sig := body[splitAt:]

	m2 := pae(v2PublicHeader, message, footer)

	if !pasetocrypto.Verify(ed25519.PublicKey(publicKey), m2, sig) {
		return nil, nil, newErr(InvalidSignature, "signature verification failed")
	}
	return message, footer, nil
}
