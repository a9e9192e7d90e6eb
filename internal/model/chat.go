package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole marks who authored a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "model"
)

// Source is a citation attached to an assistant message.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// ChatMessage is one turn of an assistant conversation. The service stores
// whatever the assistant returned; it does not interpret the content.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}

// ChatSession is an assistant conversation owned by exactly one account.
type ChatSession struct {
	ID          uuid.UUID     `json:"id"`
	OwnerID     uuid.UUID     `json:"userId"`
	Title       string        `json:"title"`
	LastUpdated time.Time     `json:"lastUpdated"`
	Messages    []ChatMessage `json:"messages"`
}
