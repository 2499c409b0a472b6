package channel

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrBadSecret is returned when a Telegram update carries a secret header
// that does not match the secret stored on the matched integration.
var ErrBadSecret = errors.New("channel: invalid secret token")

// telegramUpdate mirrors the relevant slice of a Telegram webhook update.
// The top-level token identifies which bot the update was delivered for.
type telegramUpdate struct {
	Token   string `json:"token"`
	Message struct {
		Text string `json:"text"`
		From struct {
			ID int64 `json:"id"`
		} `json:"from"`
	} `json:"message"`
}

// parseTelegram decodes a Telegram update. Updates without message text
// (edited messages, stickers, join events) produce an empty message list so
// the caller can acknowledge without resolving a tenant.
func parseTelegram(body []byte) ([]Payload, error) {
	var upd telegramUpdate
	if err := json.Unmarshal(body, &upd); err != nil {
		return nil, ErrMalformedPayload
	}
	p := Payload{Identity: upd.Token}
	if upd.Message.Text != "" {
		from := "unknown"
		if upd.Message.From.ID != 0 {
			from = strconv.FormatInt(upd.Message.From.ID, 10)
		}
		p.Messages = append(p.Messages, Inbound{ExternalUserID: from, Text: upd.Message.Text})
	}
	return []Payload{p}, nil
}

// VerifySharedSecret compares the stored shared secret against the header
// value in constant time. Verification is only enforced when the
// integration has a secret configured; absent a stored secret it is
// skipped, matching how the webhook was registered.
func VerifySharedSecret(stored, header string) error {
	if stored == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(header)) != 1 {
		return ErrBadSecret
	}
	return nil
}
