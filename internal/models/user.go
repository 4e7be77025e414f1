package models

import "time"

// UserRole enumerates the three practicum roles.
type UserRole string

const (
	RoleStudent UserRole = "Student"
	RoleMentor  UserRole = "Mentor"
	RoleTutor   UserRole = "Tutor"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleTutor:
		return true
	}
	return false
}

// User lives in the relational store and owns identity and role.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	StudentIndex *string   `db:"student_index" json:"studentIndex,omitempty"`
	Organization *string   `db:"organization" json:"organization,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserRef is the projection embedded in mapping listings.
type UserRef struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
