package http

// DeliveryPayload mirrors the nested envelope Meta POSTs for each batch
// of webhook events. Only the fields the bot reads are declared; absent
// fields unmarshal to zero values and simply yield nothing to process.
type DeliveryPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

type ChangeValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         *Metadata         `json:"metadata,omitempty"`
	Messages         []IncomingMessage `json:"messages"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type IncomingMessage struct {
	From      string    `json:"from"`
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"`
	Type      string    `json:"type"`
	Text      *TextBody `json:"text,omitempty"`
}

type TextBody struct {
	Body string `json:"body"`
}
