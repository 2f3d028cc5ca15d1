package dto

import "time"

// AuditLogResponse registro de auditoría.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entityId"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuditLogListResponse listado de auditoría (más recientes primero).
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Limit int                `json:"limit"`
}
