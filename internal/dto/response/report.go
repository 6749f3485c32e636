package response

import (
	"time"

	"lesson-booking/internal/data/entity"
)

type ReportResponse struct {
	ID          string     `json:"id"`
	BookingID   string     `json:"booking_id"`
	TeacherID   string     `json:"teacher_id"`
	Content     string     `json:"content"`
	Summary     *string    `json:"summary,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ReportToResponse(report *entity.Report) ReportResponse {
	return ReportResponse{
		ID:          report.ID.String(),
		BookingID:   report.BookingID.String(),
		TeacherID:   report.TeacherID.String(),
		Content:     report.Content,
		Summary:     report.Summary,
		Published:   report.Published,
		PublishedAt: report.PublishedAt,
		CreatedAt:   report.CreatedAt,
	}
}

func ReportsToResponse(reports []*entity.Report) []ReportResponse {
	out := make([]ReportResponse, len(reports))
	for i, report := range reports {
		out[i] = ReportToResponse(report)
	}
	return out
}
