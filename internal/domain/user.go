package domain

// UserData is the identity the auth service reports for a verified session.
type UserData struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// DisplayName prefers the full name and falls back to the username.
func (u UserData) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
