package entity

import (
	"github.com/google/uuid"
)

// AuditLog is append-only: no update or delete path exists anywhere.
type AuditLog struct {
	BaseSimple
	ActorID     uuid.UUID      `db:"actor_id"`
	Action      string         `db:"action"`
	TargetTable string         `db:"target_table"`
	TargetID    uuid.UUID      `db:"target_id"`
	Metadata    map[string]any `db:"metadata"`
}

const (
	AuditActionBalanceAdjusted = "balance_adjusted"
	AuditActionUserSuspended   = "user_suspended"
	AuditActionUserReactivated = "user_reactivated"
	AuditActionOwnershipDenied = "ownership_denied"
)
