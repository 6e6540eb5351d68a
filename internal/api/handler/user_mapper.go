package handler

import (
	"time"

	"github.com/accesshub/rbac-service/internal/core/domain"
)

type roleResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type userResponse struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	Roles     []roleResponse `json:"roles"`
}

type auditLogResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toRoleResponse(r domain.Role) roleResponse {
	return roleResponse{ID: r.ID, Name: r.Name, Level: r.Level}
}

func toUserResponse(u *domain.User) userResponse {
	roles := make([]roleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, toRoleResponse(r))
	}
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		Roles:     roles,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func toAuditLogResponses(entries []domain.AuditLogEntry) []auditLogResponse {
	out := make([]auditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditLogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
