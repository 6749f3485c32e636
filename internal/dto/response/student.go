package response

import (
	"time"

	"lesson-booking/internal/data/entity"
)

type StudentResponse struct {
	ID         string    `json:"id"`
	GuardianID string    `json:"guardian_id"`
	Name       string    `json:"name"`
	Grade      *string   `json:"grade,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func StudentToResponse(student *entity.Student) StudentResponse {
	return StudentResponse{
		ID:         student.ID.String(),
		GuardianID: student.GuardianID.String(),
		Name:       student.Name,
		Grade:      student.Grade,
		CreatedAt:  student.CreatedAt,
	}
}

func StudentsToResponse(students []*entity.Student) []StudentResponse {
	out := make([]StudentResponse, len(students))
	for i, student := range students {
		out[i] = StudentToResponse(student)
	}
	return out
}
