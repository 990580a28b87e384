package domain

// TokenKey is the storage key under which the bearer token is persisted.
const TokenKey = "access_token"

// Message is the request payload for one chat send.
// No validation is applied; empty strings are sent as-is.
type Message struct {
	Message string `json:"message"`
}

// NewMessage wraps text in a Message payload.
func NewMessage(text string) Message {
	return Message{Message: text}
}
