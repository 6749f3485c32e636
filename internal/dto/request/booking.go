package request

type CreateBookingRequest struct {
	TeacherID       string `json:"teacher_id" validate:"required,uuid4"`
	StudentID       string `json:"student_id" validate:"required,uuid4"`
	SlotID          string `json:"slot_id" validate:"required,uuid4"`
	TicketBalanceID string `json:"ticket_balance_id" validate:"required,uuid4"`
}
