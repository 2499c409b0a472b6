package channel

import "encoding/json"

// instagramEvent mirrors the Instagram messaging webhook shape:
// entry[].{id, messaging[].{sender.id, message.text}}.
type instagramEvent struct {
	Entry []struct {
		ID        string `json:"id"`
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
		} `json:"messaging"`
	} `json:"entry"`
}

// parseInstagram decodes an Instagram event. One payload group is produced
// per entry carrying a page id, since a single delivery can batch events
// for several pages; entries without an id are skipped, and messaging
// items without text (reactions, read receipts) are dropped.
func parseInstagram(body []byte) ([]Payload, error) {
	var ev instagramEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, ErrMalformedPayload
	}

	var out []Payload
	for _, entry := range ev.Entry {
		if entry.ID == "" {
			continue
		}
		p := Payload{Identity: entry.ID}
		for _, m := range entry.Messaging {
			if m.Message.Text == "" {
				continue
			}
			from := m.Sender.ID
			if from == "" {
				from = "unknown"
			}
			p.Messages = append(p.Messages, Inbound{ExternalUserID: from, Text: m.Message.Text})
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrMissingIdentity
	}
	return out, nil
}
