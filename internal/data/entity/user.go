package entity

type UserRole string

const (
	RoleGuardian UserRole = "guardian"
	RoleTeacher  UserRole = "teacher"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
