package domain

import "time"

// StaffMember is a portal account listed in the user management section.
type StaffMember struct {
	ID        string
	Username  string
	FullName  string
	Email     string
	Role      Role
	Active    bool
	LastLogin *time.Time
	CreatedAt time.Time
}
