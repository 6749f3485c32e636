package request

type CreateTicketRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=100"`
	Minutes       int     `json:"minutes" validate:"required,min=15,max=240"`
	BundleQty     int     `json:"bundle_qty" validate:"required,min=1,max=100"`
	PriceCents    int64   `json:"price_cents" validate:"required,min=100"`
	ValidDays     int     `json:"valid_days" validate:"required,min=1,max=730"`
	StripePriceID *string `json:"stripe_price_id,omitempty"`
}

type UpdateTicketRequest struct {
	IsActive bool `json:"is_active"`
}
