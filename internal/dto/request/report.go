package request

type CreateReportRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	Content   string  `json:"content" validate:"required,min=1"`
	Summary   *string `json:"summary,omitempty"`
}

type UpdateReportRequest struct {
	Content string  `json:"content" validate:"required,min=1"`
	Summary *string `json:"summary,omitempty"`
}
