package models

// Roles issued by the authentication service.
const (
	RoleCitizen = "ROLE_CITIZEN"
	RoleAdmin   = "ROLE_ADMIN"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the credential and identity returned by login and
// register.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserProfile is the safe view of an account returned by /users/me.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ProfileUpdate is the body of PUT /users/me. Only the email is editable.
type ProfileUpdate struct {
	Email string `json:"email"`
}
