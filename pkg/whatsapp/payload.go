package whatsapp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Cloud API webhook payload. Only the fields this service reads are mapped.

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []webhookEntry `json:"entry"`
}

type webhookEntry struct {
	Id      string          `json:"id"`
	Changes []webhookChange `json:"changes"`
}

type webhookChange struct {
	Field string       `json:"field"`
	Value webhookValue `json:"value"`
}

type webhookValue struct {
	Contacts []webhookContact `json:"contacts"`
	Messages []webhookMessage `json:"messages"`
	Statuses []webhookStatus  `json:"statuses"`
}

type webhookContact struct {
	WaId    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

type webhookMessage struct {
	Id        string `json:"id"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text"`
	Document *struct {
		Id       string `json:"id"`
		Filename string `json:"filename"`
		MimeType string `json:"mime_type"`
	} `json:"document"`
	Image *struct {
		Id       string `json:"id"`
		MimeType string `json:"mime_type"`
	} `json:"image"`
}

type webhookStatus struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

// ParsePayload converts a raw webhook body into normalized events. Delivery
// statuses come back as KindStatus events so the caller can acknowledge and
// drop them; unrecognized message types come back as KindUnknown.
func ParsePayload(body []byte) ([]*Event, error) {
	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal webhook payload: %w", err)
	}

	var events []*Event
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			name := ""
			if len(change.Value.Contacts) > 0 {
				name = change.Value.Contacts[0].Profile.Name
			}

			for _, status := range change.Value.Statuses {
				events = append(events, &Event{
					MessageId:  status.Id,
					Kind:       KindStatus,
					ReceivedAt: time.Now(),
				})
			}

			for _, msg := range change.Value.Messages {
				evt := &Event{
					UserId:      msg.From,
					DisplayName: name,
					MessageId:   msg.Id,
					ReceivedAt:  time.Now(),
				}

				switch msg.Type {
				case "text":
					evt.Kind = KindText
					if msg.Text != nil {
						evt.Text = msg.Text.Body
					}
				case "document":
					evt.Kind = KindDocument
					if msg.Document != nil {
						evt.Document = &DocumentAttachment{
							MediaId:  msg.Document.Id,
							Filename: msg.Document.Filename,
							MimeType: msg.Document.MimeType,
						}
					}
				case "image":
					evt.Kind = KindImage
				default:
					evt.Kind = KindUnknown
				}

				events = append(events, evt)
			}
		}
	}

	return events, nil
}
