// Package dto defines request/response shapes for the HTTP API.
package dto

// SuccessResponse is a generic success envelope.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RoleResponse carries the current caller role.
type RoleResponse struct {
	Role string `json:"role"`
}
