package paseto

import (
	"bytes"
	"encoding/base64"
)

// b64Encode returns the base64url encoding of src with no padding.
func b64Encode(src []byte) []byte {
	dst := make([]byte, base64.RawURLEncoding.EncodedLen(len(src)))
	base64.RawURLEncoding.Encode(dst, src)
	return dst
}

// b64Decode decodes a base64url-without-padding segment. It rejects
// padding, '+', '/', whitespace, any character outside the alphabet,
// and non-zero trailing bits with MalformedToken, so each decoded
// segment has exactly one accepted encoding.
func b64Decode(src []byte) ([]byte, error) {
	// The base64 decoder skips '\r' and '\n' on its own; refuse them here.
	if bytes.ContainsAny(src, "\r\n") {
		return nil, newErr(MalformedToken, "invalid base64url segment")
	}
	dst := make([]byte, base64.RawURLEncoding.DecodedLen(len(src)))
	n, err := base64.RawURLEncoding.Strict().Decode(dst, src)
	if err != nil {
		return nil, wrapErr(MalformedToken, "invalid base64url segment", err)
	}
	return dst[:n], nil
}
