package request

type CreateStudentRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=100"`
	Grade *string `json:"grade,omitempty" validate:"omitempty,min=1,max=20"`
}
