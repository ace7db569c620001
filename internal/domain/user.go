package domain

import "time"

// UserRole represents the role of an account
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleManager  UserRole = "MANAGER"
	RoleOperator UserRole = "OPERATOR"
)

// User represents an account in the booking console
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRole проверяет, что роль входит в допустимый набор
func ValidRole(role UserRole) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleOperator
}
