package channel

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	// ErrMissingSignature is returned when a Meta webhook POST arrives
	// without the X-Hub-Signature-256 header.
	ErrMissingSignature = errors.New("channel: missing signature header")

	// ErrBadSignature is returned when the header signature does not match
	// the HMAC of the raw body under the configured app secret.
	ErrBadSignature = errors.New("channel: invalid signature")
)

// VerifyMetaSignature checks the "sha256=<hex>" HMAC signature Meta sends
// with WhatsApp and Instagram webhooks. The HMAC input must be the raw,
// unparsed request body; re-serialized JSON would not reproduce the
// provider's byte stream. Comparison is constant-time and failure closes
// the request before any JSON parsing or tenant resolution happens.
func VerifyMetaSignature(appSecret string, rawBody []byte, signatureHeader string) error {
	if signatureHeader == "" {
		return ErrMissingSignature
	}
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(rawBody)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signatureHeader)) {
		return ErrBadSignature
	}
	return nil
}
