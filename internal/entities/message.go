package entities

// Message is one inbound WhatsApp text message, unwrapped from a webhook
// delivery payload. It lives only for the duration of one dispatch and is
// never persisted.
type Message struct {
	ID      string
	From    string // opaque phone identifier
	Content string
	Type    string // "text", "image", ...
}

// Reply is the outbound counterpart, consumed exactly once by the sender.
type Reply struct {
	To      string
	Content string
}
