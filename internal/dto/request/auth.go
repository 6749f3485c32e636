package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Role     string  `json:"role" validate:"required,oneof=guardian teacher"`

	// Teacher signup only
	Subjects []string `json:"subjects,omitempty" validate:"omitempty,dive,min=1"`
	Grades   []string `json:"grades,omitempty" validate:"omitempty,dive,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
