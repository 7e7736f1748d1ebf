package whatsapp

import "time"

// Event kinds produced by the webhook payload adapter.
const (
	KindText     = "text"
	KindDocument = "document"
	KindImage    = "image"
	KindStatus   = "status"
	KindUnknown  = "unknown"
)

// DocumentAttachment describes an inbound document message. The bytes are
// fetched separately via the media endpoint.
type DocumentAttachment struct {
	MediaId  string `json:"media_id"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
}

// Event is a normalized inbound message, decoupled from the Cloud API
// payload shape. It is what travels on the internal event bus.
type Event struct {
	UserId      string              `json:"user_id"` // WhatsApp phone number (wa_id)
	DisplayName string              `json:"display_name"`
	MessageId   string              `json:"message_id"`
	Kind        string              `json:"kind"`
	Text        string              `json:"text,omitempty"`
	Document    *DocumentAttachment `json:"document,omitempty"`
	ReceivedAt  time.Time           `json:"received_at"`
}
