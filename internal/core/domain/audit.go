package domain

import "time"

// AuditAction classifies a state-changing operation.
type AuditAction string

const (
	ActionRegister AuditAction = "REGISTER"
	ActionInsert   AuditAction = "INSERT"
	ActionUpdate   AuditAction = "UPDATE"
	ActionDelete   AuditAction = "DELETE"
	ActionRevert   AuditAction = "REVERT"
)

// UsersTable is the subject name recorded for user mutations.
const UsersTable = "User"

// AuditLogEntry is an append-only record of a state-changing action. Data
// holds the JSON serialization of the affected entity as it was at the moment
// of recording. Entries reference users by value only, so the trail survives
// user deletion.
type AuditLogEntry struct {
	ID        int64       `json:"id"`
	TableName string      `json:"table_name"`
	Action    AuditAction `json:"action"`
	ChangedBy string      `json:"changed_by"`
	ChangedAt time.Time   `json:"changed_at"`
	Data      string      `json:"data"`
}
