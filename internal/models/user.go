// Package models contains the domain records exchanged with the gym backend.
// All entities are owned by the backend; the gateway holds transient cached
// copies only, so fields mirror the backend JSON verbatim.
package models

// Role values recognised by the console. The role determines which routes and
// operations a logged-in user may reach.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User is the authenticated identity returned by the backend.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest carries the credentials sent to the backend.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse is the backend answer to a successful login.
type LoginResponse struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}
