package model

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a farm task owned by exactly one account. Only the owner's
// session may read, complete, or delete it.
type Reminder struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	IsCompleted bool      `json:"isCompleted"`
}
