package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public user projection returned by auth endpoints.
type UserResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"`
	SystemRole string `json:"system_role"`
	Avatar     string `json:"avatar,omitempty"`
}

// LoginResponse returns the user projection plus an opaque session marker.
// The marker is the plain-variant session token; the mobile shell stores it
// as its session handle, but authority lives in the cookies.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ResolvedUserResponse extends the projection with the caller's full
// per-client authorization context.
type ResolvedUserResponse struct {
	UserResponse
	ClientRoles []ClientRoleResponse `json:"client_roles"`
	ClientIDs   []uint               `json:"client_ids"`
}

type ClientRoleResponse struct {
	ID          uint   `json:"id"`
	ClientID    uint   `json:"client_id"`
	CompanyRole string `json:"company_role"`
}

// SessionTokenResponse is returned by GET /api/auth/token for the mobile
// bridge reading the current web-side session out of cookies.
type SessionTokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
	Role  string       `json:"role"`
}

// TemporaryAccessResponse carries the one-time handoff token. The raw token
// appears here and nowhere else.
type TemporaryAccessResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	AccessURL string    `json:"accessUrl"`
}

type ValidateTemporaryAccessResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}
