package queue

import "github.com/dmitrymomot/dispatch/pkg/directory"

// MaxTextLength is the longest message text, in characters.
const MaxTextLength = 4096

// Contact is a user as embedded in messages.
type Contact = directory.User

// EnqueueRequest is the message to store. Empty strings are valid values;
// when decoded from JSON, properties absent from the document are reported
// as missing by validation.
type EnqueueRequest struct {
	HistoryKey string    `json:"history_key"`
	Sender     Contact   `json:"sender"`
	Recipients []Contact `json:"recipients"`
	Text       string    `json:"text"`
	Provider   string    `json:"provider"`
	// DeliverAt is an optional ISO-8601 instant. Nil means now.
	DeliverAt *string `json:"deliver_at,omitempty"`

	missing []string
}

type EnqueueResult struct {
	DeliverAt string `json:"deliver_at"`
	Scheduled bool   `json:"scheduled"`
}

// Record is the stored message.
type Record struct {
	Sender     Contact     `json:"sender"`
	Recipients []Recipient `json:"recipients"`
	Text       string      `json:"text"`
	Provider   string      `json:"provider"`
	DeliverAt  string      `json:"deliverAt"`
}

// Recipient is a contact with its group ids and the channels couriers have
// delivered through so far.
type Recipient struct {
	Contact
	Origin     []int64  `json:"origin"`
	ReceivedIn []string `json:"receivedIn"`
}

// TrackRequest carries the tracked key, the number of courier touches to
// wait for and the wait limit in seconds. All fields are required.
type TrackRequest struct {
	HistoryKey string `json:"history_key"`
	TouchCount *int   `json:"touch_count"`
	Timeout    *int   `json:"timeout"`
}
