package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction identifies the kind of state-changing action being recorded.
type AuditAction string

const (
	ActionRegisterUser   AuditAction = "REGISTER_USER"
	ActionUpdateUser     AuditAction = "UPDATE_USER"
	ActionDeleteUser     AuditAction = "DELETE_USER"
	ActionLogin          AuditAction = "LOGIN"
	ActionLogout         AuditAction = "LOGOUT"
	ActionChangePassword AuditAction = "CHANGE_PASSWORD"
)

// AuditEntry is an append-only record of a state-changing action. Entries are
// never mutated or deleted. Every session-affecting action is logged for
// every role; the only gate is that a session exists.
type AuditEntry struct {
	ID        uuid.UUID   `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Actor     string      `json:"actorUsername"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
}
