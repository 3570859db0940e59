package domain

import "encoding/json"

// ============================================================
// Auth — Request / Response types (matches backend API contract)
// ============================================================

// SignupRequest is the body for POST /api/auth/signup.
type SignupRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Role                 Role   `json:"role"`
	Phone                string `json:"phone,omitempty"`
	Address              string `json:"address,omitempty"`
	City                 string `json:"city,omitempty"`
	State                string `json:"state,omitempty"`
	ZipCode              string `json:"zip_code,omitempty"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is what a successful signup or login yields: the normalized
// user plus the bearer token the backend issued.
type AuthResult struct {
	User  *User
	Token string
}

// ============================================================
// Wire envelope
// ============================================================

// Envelope is the uniform {success, data?, message?, error?} wrapper the
// backend puts around every response. Data stays raw so each resource
// client can unmarshal it into its own payload type.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorEnvelope  `json:"error,omitempty"`
}

// ErrorEnvelope is the structured error the backend nests under "error".
type ErrorEnvelope struct {
	Message string        `json:"message,omitempty"`
	Details []FieldDetail `json:"details,omitempty"`
}

// FieldDetail is one field-level validation failure.
type FieldDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}
