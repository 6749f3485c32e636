package response

import (
	"time"

	"lesson-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	TeacherID       string               `json:"teacher_id"`
	StudentID       string               `json:"student_id"`
	SlotID          string               `json:"slot_id"`
	StartTime       time.Time            `json:"start_time"`
	EndTime         time.Time            `json:"end_time"`
	Status          entity.BookingStatus `json:"status"`
	TicketBalanceID string               `json:"ticket_balance_id"`
	CanceledBy      *string              `json:"canceled_by,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              booking.ID.String(),
		TeacherID:       booking.TeacherID.String(),
		StudentID:       booking.StudentID.String(),
		SlotID:          booking.SlotID.String(),
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		Status:          booking.Status,
		TicketBalanceID: booking.TicketBalanceID.String(),
		CreatedAt:       booking.CreatedAt,
	}

	if booking.CanceledBy != nil {
		canceledBy := booking.CanceledBy.String()
		resp.CanceledBy = &canceledBy
	}

	return resp
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		out[i] = BookingToResponse(booking)
	}
	return out
}
