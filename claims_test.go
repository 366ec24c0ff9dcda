package paseto

import (
	"bytes"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func symmetricTestKey(t *testing.T) []byte {
	t.Helper()
	return bytes.Repeat([]byte{0x42}, 32)
}

func TestCreateParseLocalRoundTrip(t *testing.T) {
	key := symmetricTestKey(t)
	claims := map[string]any{"a": float64(1)}

	token, err := Create(key, PurposeLocal, claims, WithExpiry(300))
	require.NoError(t, err)

	parsed, err := Parse(key, PurposeLocal, token)
	require.NoError(t, err)
	require.Equal(t, float64(1), parsed.Message["a"])

	expStr, ok := parsed.Message["exp"].(string)
	require.True(t, ok)
	exp, err := time.Parse(expTimeLayout, expStr)
	require.NoError(t, err)
	require.True(t, exp.After(time.Now().UTC()))
}

func TestCreateParsePublicRoundTripWithFooter(t *testing.T) {
	_, sk, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	pk := sk.Public().(ed25519.PublicKey)

	claims := map[string]any{
		"claim1": true,
		"claim2": float64(999),
		"claim3": map[string]any{"nested": "this is a string", "array": []any{float64(1), float64(2), float64(3)}},
		"claim4": "string2",
	}
	footer := map[string]any{"footer field": false}

	token, err := Create([]byte(sk), PurposePublic, claims, WithFooter(footer))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(token, []byte("v2.public")))

	parsed, err := Parse([]byte(pk), PurposePublic, token)
	require.NoError(t, err)
	require.Equal(t, claims, parsed.Message)
	require.Equal(t, footer, parsed.Footer)
}

func TestConfigErrorOnUnknownPurpose(t *testing.T) {
	key := symmetricTestKey(t)
	_, err := Create(key, Purpose("bogus"), map[string]any{})
	require.ErrorIs(t, err, ErrConfigError)
}

func TestParseExpiredTokenFails(t *testing.T) {
	_, sk, _ := ed25519.GenerateKey(nil)
	pk := sk.Public().(ed25519.PublicKey)

	token, err := Create([]byte(sk), PurposePublic, map[string]any{"my claims": []any{float64(1), float64(2), float64(3)}}, WithExpiry(-300))
	require.NoError(t, err)

	_, err = Parse([]byte(pk), PurposePublic, token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseSkipsExpiryWhenRequested(t *testing.T) {
	_, sk, _ := ed25519.GenerateKey(nil)
	pk := sk.Public().(ed25519.PublicKey)

	token, err := Create([]byte(sk), PurposePublic, map[string]any{"my claims": []any{float64(1)}}, WithExpiry(-300))
	require.NoError(t, err)

	parsed, err := Parse([]byte(pk), PurposePublic, token, SkipExpiryValidation())
	require.NoError(t, err)
	require.NotNil(t, parsed)
}

// required_claims is enforced independent of validate: a deliberately
// kept quirk rather than something to "fix" silently.
func TestParseRequiredClaimsIndependentOfValidate(t *testing.T) {
	_, sk, _ := ed25519.GenerateKey(nil)
	pk := sk.Public().(ed25519.PublicKey)

	token, err := Create([]byte(sk), PurposePublic, map[string]any{"my claims": []any{float64(1)}}, WithExpiry(-300))
	require.NoError(t, err)

	parsed, err := Parse([]byte(pk), PurposePublic, token, SkipExpiryValidation(), WithRequiredClaims("exp", "my claims"))
	require.NoError(t, err)
	require.Contains(t, parsed.Message, "exp")
	require.Contains(t, parsed.Message, "my claims")

	_, err = Parse([]byte(pk), PurposePublic, token, SkipExpiryValidation(), WithRequiredClaims("exp", "missing"))
	require.ErrorIs(t, err, ErrValidationError)
}

func TestFooterFallsBackToRawBytesWhenNotJSON(t *testing.T) {
	key := symmetricTestKey(t)
	token, err := Create(key, PurposeLocal, map[string]any{"a": float64(1)}, WithFooter([]byte("not json")))
	require.NoError(t, err)

	parsed, err := Parse(key, PurposeLocal, token)
	require.NoError(t, err)
	require.Equal(t, []byte("not json"), parsed.Footer)
}
