package models

import "time"

// User is the persistent account record. PasswordHash never leaves the
// repository/service layers: outward-facing code only ever sees PublicUser.
type User struct {
	ID           string
	Name         string
	Email        string
	StudentID    string
	PasswordHash string
	University   string
	Role         string
	CreatedAt    time.Time
}

// PublicUser is the projection of an account returned by the API.
type PublicUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	StudentID  string `json:"studentId"`
	University string `json:"university"`
	Role       string `json:"role"`
}

// Public returns the outward-facing projection of the account.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		StudentID:  u.StudentID,
		University: u.University,
		Role:       u.Role,
	}
}
