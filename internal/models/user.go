package models

import "time"

// User captures application-facing fields for an account.
type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	Approved   bool      `json:"approved"`
	EmployeeID *int64    `json:"employee_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Pending reports whether the account is an employee still awaiting admin approval.
func (u User) Pending() bool {
	return u.Role == RoleEmployee && !u.Approved
}

// PendingUser is the admin-facing view of an unapproved registration.
type PendingUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
