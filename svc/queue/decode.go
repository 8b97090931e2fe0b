package queue

import (
	"encoding/json"
	"fmt"
)

type contactDoc struct {
	ID    int64   `json:"id"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
}

type enqueueDoc struct {
	HistoryKey string       `json:"history_key"`
	Sender     *contactDoc  `json:"sender"`
	Recipients []contactDoc `json:"recipients"`
	Text       *string      `json:"text"`
	Provider   *string      `json:"provider"`
	DeliverAt  *string      `json:"deliver_at"`
}

// UnmarshalJSON decodes the request and remembers which required string
// properties were absent or null. Unknown properties are ignored.
func (r *EnqueueRequest) UnmarshalJSON(data []byte) error {
	var doc enqueueDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	var missing []string
	str := func(field string, v *string) string {
		if v == nil {
			missing = append(missing, field)
			return ""
		}
		return *v
	}
	contact := func(field string, c contactDoc) Contact {
		return Contact{
			ID:    c.ID,
			Email: str(field+".email", c.Email),
			Name:  str(field+".name", c.Name),
			Role:  str(field+".role", c.Role),
		}
	}

	*r = EnqueueRequest{HistoryKey: doc.HistoryKey, DeliverAt: doc.DeliverAt}
	if doc.Sender != nil {
		r.Sender = contact("sender", *doc.Sender)
	} else {
		missing = append(missing, "sender")
	}
	if doc.Recipients != nil {
		r.Recipients = make([]Contact, len(doc.Recipients))
		for i, c := range doc.Recipients {
			r.Recipients[i] = contact(fmt.Sprintf("recipients[%d]", i), c)
		}
	}
	r.Text = str("text", doc.Text)
	r.Provider = str("provider", doc.Provider)
	r.missing = missing
	return nil
}
