package paseto

import (
	"bytes"
	"encoding/base64"
	"sync"

	"github.com/josharian/paseto2/internal/pasetocrypto"
)

var v2LocalHeader = []byte("v2.local.")

// testSeamMu and localTestNonce back the nonce test seam: they exist
// purely so interoperability vectors with a fixed nonce can be
// reproduced; production code only reads them (nextLocalSeed) and
// never sets them. Tests using
// SetLocalTestNonce must not run concurrently with each other or with
// any other LocalEncrypt call, since the slot is process-wide.
var (
	testSeamMu     sync.Mutex
	localTestNonce []byte
)

// SetLocalTestNonce overrides the 24-byte random seed Encrypt would
// otherwise draw from the CSPRNG. Pass nil to go back to the CSPRNG.
// Test-only: never call this outside of deterministic vector tests,
// and never from production code paths.
func SetLocalTestNonce(seed []byte) {
	testSeamMu.Lock()
	defer testSeamMu.Unlock()
	localTestNonce = seed
}

func nextLocalSeed() ([]byte, error) {
	testSeamMu.Lock()
	seed := localTestNonce
	testSeamMu.Unlock()
	if seed != nil {
		return seed, nil
	}
	return pasetocrypto.RandomBytes(24)
}

// LocalEncrypt builds a v2.local[.footer] token. footer may be nil; a
// nil and an empty footer produce byte-identical tokens.
func LocalEncrypt(key, plaintext, footer []byte) ([]byte, error) {
	if len(key) != pasetocrypto.KeySize {
		return nil, newErr(ConfigError, "local key must be 32 bytes")
	}

	// 1. Generate 24 random bytes from the CSPRNG (or the test seam).
	seed, err := nextLocalSeed()
	if err != nil {
		return nil, wrapErr(CryptoFailure, "unable to generate nonce seed", err)
	}

	// 2. Derive the nonce as BLAKE2b(key=seed, data=plaintext, out=24).
	nonce, err := pasetocrypto.DeriveNonce(seed, plaintext)
	if err != nil {
		return nil, wrapErr(CryptoFailure, "unable to derive nonce", err)
	}

	// 3. aad = PAE(header, nonce, footer).
	aad := pae(v2LocalHeader, nonce, footer)

	// 4. c, tag = AEAD-Seal(key, nonce, plaintext, aad).
	ciphertextAndTag, err := pasetocrypto.AEADEncrypt(key, nonce, plaintext, aad)
	if err != nil {
		return nil, wrapErr(CryptoFailure, "encryption failed", err)
	}

	// 5. body = nonce || ciphertext || tag.
	body := make([]byte, 0, len(nonce)+len(ciphertextAndTag))
	body = append(body, nonce...)
	body = append(body, ciphertextAndTag...)

	// 6. header || b64(body)[, "." || b64(footer)] iff footer non-empty.
	return assembleToken(v2LocalHeader, body, footer), nil
}

// LocalDecrypt parses and opens a v2.local token, returning the
// plaintext and any footer.
func LocalDecrypt(key, token []byte) (plaintext, footer []byte, err error) {
	if len(key) != pasetocrypto.KeySize {
		return nil, nil, newErr(ConfigError, "local key must be 32 bytes")
	}

	body, footer, err := splitToken(v2LocalHeader, token)
	if err != nil {
		return nil, nil, err
	}
	if len(body) < pasetocrypto.NonceSize+pasetocrypto.TagSize {
		return nil, nil, newErr(MalformedToken, "local body shorter than minimum length")
	}

	nonce := body[:pasetocrypto.NonceSize]
	ciphertextAndTag := body[pasetocrypto.NonceSize:]

	aad := pae(v2LocalHeader, nonce, footer)

	plaintext, err = pasetocrypto.AEADDecrypt(key, nonce, ciphertextAndTag, aad)
	if err != nil {
		// Never surface whether the failure was structural or a tag
		// mismatch beyond this point: decrypt failures here are always
		// reported as CryptoFailure, to avoid giving an attacker an
		// oracle on which step failed.
		return nil, nil, wrapErr(CryptoFailure, "decryption failed", err)
	}
	return plaintext, footer, nil
}

// assembleToken builds header || b64(body)[ . b64(footer)].
func assembleToken(header, body, footer []byte) []byte {
	encBody := b64Encode(body)
	out := make([]byte, 0, len(header)+len(encBody)+1+base64.RawURLEncoding.EncodedLen(len(footer)))
	out = append(out, header...)
	out = append(out, encBody...)
	if len(footer) > 0 {
		out = append(out, '.')
		out = append(out, b64Encode(footer)...)
	}
	return out
}

// splitToken validates the header and splits a token into its
// decoded body and decoded footer. Shared between local and public
// parsing.
func splitToken(header, token []byte) (body, footer []byte, err error) {
	if !bytes.HasPrefix(token, header) {
		return nil, nil, newErr(MalformedToken, "missing or wrong header")
	}
	rest := token[len(header):]

	var bodyPart []byte
	if i := bytes.IndexByte(rest, '.'); i >= 0 {
		footer, err = b64Decode(rest[i+1:])
		if err != nil {
			return nil, nil, err
		}
		bodyPart = rest[:i]
	} else {
		bodyPart = rest
	}

	body, err = b64Decode(bodyPart)
	if err != nil {
		return nil, nil, err
	}
	return body, footer, nil
}
