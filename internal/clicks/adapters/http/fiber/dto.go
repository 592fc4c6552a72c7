package fiber

import "time"

// CreateClickRequest represents click ingestion payload
// @Description Click ingestion DTO. "box" is accepted as a legacy alias of "category".
type CreateClickRequest struct {
	Category string `json:"category" example:"A"`
	Box      string `json:"box,omitempty" example:""`
}

type CreateClickResponse struct {
	Status     string    `json:"status" example:"saved"`
	ID         int64     `json:"id" example:"1042"`
	Category   string    `json:"category" example:"A"`
	OccurredAt time.Time `json:"occurredAt" example:"2026-10-17T09:30:00Z"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"category must be A|B|C|D"`
}
