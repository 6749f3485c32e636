package response

import (
	"time"

	"lesson-booking/internal/data/entity"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditLogResponse struct {
	ID          string         `json:"id"`
	ActorID     string         `json:"actor_id"`
	Action      string         `json:"action"`
	TargetTable string         `json:"target_table"`
	TargetID    string         `json:"target_id"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = UserToResponse(user)
	}
	return out
}

func AuditLogToResponse(entry *entity.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          entry.ID.String(),
		ActorID:     entry.ActorID.String(),
		Action:      entry.Action,
		TargetTable: entry.TargetTable,
		TargetID:    entry.TargetID.String(),
		Metadata:    entry.Metadata,
		CreatedAt:   entry.CreatedAt,
	}
}

func AuditLogsToResponse(entries []*entity.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, len(entries))
	for i, entry := range entries {
		out[i] = AuditLogToResponse(entry)
	}
	return out
}
