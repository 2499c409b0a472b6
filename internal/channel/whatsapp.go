package channel

import "encoding/json"

// whatsappEvent mirrors the WhatsApp Cloud API webhook shape:
// entry[].changes[].value.{metadata.phone_number_id, messages[]}.
type whatsappEvent struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Metadata struct {
					PhoneNumberID string `json:"phone_number_id"`
				} `json:"metadata"`
				Messages []struct {
					From string `json:"from"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// parseWhatsApp decodes a WhatsApp Cloud API event. The phone_number_id is
// mandatory — without it no integration can be addressed. Status-only
// deliveries (no messages array) yield an empty message list.
func parseWhatsApp(body []byte) ([]Payload, error) {
	var ev whatsappEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, ErrMalformedPayload
	}
	if len(ev.Entry) == 0 || len(ev.Entry[0].Changes) == 0 {
		return nil, ErrMissingIdentity
	}
	value := ev.Entry[0].Changes[0].Value
	if value.Metadata.PhoneNumberID == "" {
		return nil, ErrMissingIdentity
	}

	p := Payload{Identity: value.Metadata.PhoneNumberID}
	for _, m := range value.Messages {
		from := m.From
		if from == "" {
			from = "unknown"
		}
		p.Messages = append(p.Messages, Inbound{ExternalUserID: from, Text: m.Text.Body})
	}
	return []Payload{p}, nil
}
