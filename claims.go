package paseto

import (
	"encoding/json"
	"time"
)

// Purpose selects which engine the claim facade dispatches to.
type Purpose string

const (
	PurposeLocal  Purpose = "local"
	PurposePublic Purpose = "public"
)

// expClaim is the reserved claim name for token expiry. expTimeLayout
// is an ISO-8601 UTC, second-precision timestamp form.
const (
	expClaim      = "exp"
	expTimeLayout = time.RFC3339
)

// createOptions holds the optional arguments to Create.
type createOptions struct {
	footer     any
	expSeconds *int
}

// CreateOption configures Create. See WithFooter and WithExpiry.
type CreateOption func(*createOptions)

// WithFooter attaches a footer to the created token. footer may be a
// map[string]any (serialized as canonical JSON) or a []byte (treated
// as opaque). A nil footer and an absent footer produce identical
// tokens.
func WithFooter(footer any) CreateOption {
	return func(o *createOptions) { o.footer = footer }
}

// WithExpiry sets the exp claim to now + seconds. seconds may be
// negative, which is useful for constructing already-expired tokens
// in tests.
func WithExpiry(seconds int) CreateOption {
	return func(o *createOptions) {
		s := seconds
		o.expSeconds = &s
	}
}

// parseOptions holds the optional arguments to Parse.
type parseOptions struct {
	validate       bool
	requiredClaims []string
}

// ParseOption configures Parse. See SkipExpiryValidation and
// WithRequiredClaims.
type ParseOption func(*parseOptions)

// SkipExpiryValidation disables exp enforcement. required_claims
// checking still runs regardless of this option — that coupling is
// deliberate, not something to "fix" silently.
func SkipExpiryValidation() ParseOption {
	return func(o *parseOptions) { o.validate = false }
}

// WithRequiredClaims fails parsing with ValidationError unless every
// named claim is present in the decoded message.
func WithRequiredClaims(names ...string) ParseOption {
	return func(o *parseOptions) { o.requiredClaims = names }
}

// ParseResult is what Parse returns on success.
type ParseResult struct {
	Message map[string]any
	Footer  any
}

// Create JSON-encodes claims (and footer, if it is a map), optionally
// stamps an exp claim, and dispatches to the local or public engine.
func Create(key []byte, purpose Purpose, claims map[string]any, opts ...CreateOption) ([]byte, error) {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.expSeconds != nil {
		exp := time.Now().UTC().Add(time.Duration(*o.expSeconds) * time.Second)
		claims[expClaim] = exp.Format(expTimeLayout)
	}

	message, err := canonicalJSON(claims)
	if err != nil {
		return nil, wrapErr(ConfigError, "unable to serialize claims", err)
	}

	footer, err := encodeFooter(o.footer)
	if err != nil {
		return nil, err
	}

	switch purpose {
	case PurposeLocal:
		return LocalEncrypt(key, message, footer)
	case PurposePublic:
		return PublicSign(key, message, footer)
	default:
		return nil, newErr(ConfigError, "purpose must be \"local\" or \"public\"")
	}
}

// Parse dispatches to the local or public engine, JSON-decodes the
// message and footer, then applies required-claim and expiry policy.
func Parse(key []byte, purpose Purpose, token []byte, opts ...ParseOption) (*ParseResult, error) {
	o := parseOptions{validate: true}
	for _, opt := range opts {
		opt(&o)
	}

	var message, rawFooter []byte
	var err error
	switch purpose {
	case PurposeLocal:
		message, rawFooter, err = LocalDecrypt(key, token)
	case PurposePublic:
		message, rawFooter, err = PublicVerify(key, token)
	default:
		return nil, newErr(ConfigError, "purpose must be \"local\" or \"public\"")
	}
	if err != nil {
		return nil, err
	}

	claims := map[string]any{}
	if err := json.Unmarshal(message, &claims); err != nil {
		return nil, wrapErr(MalformedToken, "message is not a JSON claims object", err)
	}

	for _, name := range o.requiredClaims {
		if _, ok := claims[name]; !ok {
			return nil, newErr(ValidationError, "missing required claim "+name)
		}
	}

	if o.validate {
		if raw, ok := claims[expClaim]; ok {
			expStr, ok := raw.(string)
			if !ok {
				return nil, newErr(ValidationError, "exp claim is not a string")
			}
			exp, err := time.Parse(expTimeLayout, expStr)
			if err != nil {
				return nil, wrapErr(ValidationError, "exp claim is not a valid timestamp", err)
			}
			if time.Now().UTC().After(exp) {
				return nil, newErr(TokenExpired, "token has expired")
			}
		}
	}

	return &ParseResult{
		Message: claims,
		Footer:  decodeFooter(rawFooter),
	}, nil
}

// canonicalJSON serializes claims deterministically: encoding/json
// marshals map[string]any keys in sorted order, so the same claims
// value always produces the same bytes. That determinism — not
// insertion order — is what matters here, since these bytes are
// AEAD/signature input.
func canonicalJSON(v map[string]any) ([]byte, error) {
	return json.Marshal(v)
}

// encodeFooter serializes a facade footer value: a map is encoded as
// canonical JSON, []byte is passed through opaque, and nil becomes an
// empty footer.
func encodeFooter(footer any) ([]byte, error) {
	switch f := footer.(type) {
	case nil:
		return nil, nil
	case []byte:
		return f, nil
	case map[string]any:
		b, err := json.Marshal(f)
		if err != nil {
			return nil, wrapErr(ConfigError, "unable to serialize footer", err)
		}
		return b, nil
	default:
		return nil, newErr(ConfigError, "footer must be []byte, map[string]any, or nil")
	}
}

// decodeFooter attempts JSON decoding, and falls back to raw bytes if
// the footer doesn't parse as a JSON object.
func decodeFooter(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err == nil {
		return m
	}
	return raw
}
