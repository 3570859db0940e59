package domain

import (
	"encoding/json"
	"strings"
)

// rawUser maps the loosely-typed user record the backend returns.
// Role may arrive as a bare string or as an object with a "name" field;
// the phone may live under "phone" or "phone_number".
type rawUser struct {
	ID          int64           `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Role        json.RawMessage `json:"role"`
	Phone       string          `json:"phone"`
	PhoneNumber string          `json:"phone_number"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	ZipCode     string          `json:"zip_code"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type roleObject struct {
	Name string `json:"name"`
}

// NormalizeUser converts a raw backend user record into the canonical
// User. It never trusts the raw shape past this boundary: an
// unrecognizable role shape yields ErrMalformedPayload, not a panic or
// a silently empty role.
func NormalizeUser(raw []byte) (*User, error) {
	var ru rawUser
	if err := json.Unmarshal(raw, &ru); err != nil {
		return nil, &ErrMalformedPayload{Resource: "user", Reason: err.Error()}
	}

	role, err := collapseRole(ru.Role)
	if err != nil {
		return nil, err
	}

	phone := ru.Phone
	if phone == "" {
		phone = ru.PhoneNumber
	}

	return &User{
		ID:        ru.ID,
		Email:     ru.Email,
		FirstName: ru.FirstName,
		LastName:  ru.LastName,
		Name:      strings.TrimSpace(ru.FirstName + " " + ru.LastName),
		Role:      role,
		Phone:     phone,
		Address:   ru.Address,
		City:      ru.City,
		State:     ru.State,
		ZipCode:   ru.ZipCode,
		CreatedAt: ru.CreatedAt,
		UpdatedAt: ru.UpdatedAt,
	}, nil
}

// collapseRole accepts "car_owner" or {"name":"car_owner"} and returns
// the bare role string.
func collapseRole(raw json.RawMessage) (Role, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Role(s), nil
	}

	var obj roleObject
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return Role(obj.Name), nil
	}

	return "", &ErrMalformedPayload{Resource: "user", Reason: "unrecognized role shape: " + string(raw)}
}
