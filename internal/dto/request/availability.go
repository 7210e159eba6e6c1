package request

// CreateAvailabilityRequest carries date and clock times as text; the
// boundary validates the format, the service parses and applies the
// past-date and range rules.
type CreateAvailabilityRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// UpdateAvailabilityRequest patches only the fields present. Status can be
// toggled between Available and Unavailable; Booked is owned by the booking
// flow and is not accepted here.
type UpdateAvailabilityRequest struct {
	Date      *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=Available Unavailable"`
}
