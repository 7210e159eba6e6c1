package response

import (
	"tutorhub/internal/data/entity"
	"tutorhub/internal/data/repository"
)

type BookingCreatedResponse struct {
	BookingID string `json:"booking_id"`
	TutorName string `json:"tutor_name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	IsDemo    bool   `json:"is_demo"`
}

type BookedClassResponse struct {
	ID            string               `json:"id"`
	TutorName     string               `json:"tutor_name,omitempty"`
	TuteeName     string               `json:"tutee_name,omitempty"`
	Subject       string               `json:"subject"`
	Date          string               `json:"date"`
	FormattedDate string               `json:"formatted_date"`
	DayName       string               `json:"day_name"`
	Time          string               `json:"time"`
	Status        entity.BookingStatus `json:"status"`
	IsDemo        bool                 `json:"is_demo"`
	Notes         string               `json:"notes,omitempty"`
	BookedAt      string               `json:"booked_at"`
}

type CompletedClassResponse struct {
	ID          string `json:"id"`
	TutorName   string `json:"tutor_name,omitempty"`
	TuteeName   string `json:"tutee_name,omitempty"`
	Subject     string `json:"subject"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	IsDemo      bool   `json:"is_demo"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type CompleteResponse struct {
	BookingID   string `json:"booking_id"`
	CompletedAt string `json:"completed_at"`
}

// BookingCreatedToResponse is built from the rows the booking transaction
// already holds, so a committed booking never fails to report as booked.
func BookingCreatedToResponse(booking *entity.Booking, slot *entity.AvailabilitySlot, tutorName string) BookingCreatedResponse {
	return BookingCreatedResponse{
		BookingID: booking.ID.String(),
		TutorName: tutorName,
		Date:      FormatLongDate(slot.Date),
		Time:      FormatTimeRange(slot.StartTime, slot.EndTime),
		IsDemo:    booking.IsDemo,
	}
}

// BookedClassToResponse renders a booking for the caller's side of the
// relationship: tutees see the tutor's name, tutors see the tutee's.
func BookedClassToResponse(detail *repository.BookingDetail, forTutor bool) BookedClassResponse {
	out := BookedClassResponse{
		ID:            detail.ID.String(),
		Subject:       detail.Subject,
		Date:          FormatDate(detail.Slot.Date),
		FormattedDate: FormatLongDate(detail.Slot.Date),
		DayName:       DayName(detail.Slot.Date),
		Time:          FormatTimeRange(detail.Slot.StartTime, detail.Slot.EndTime),
		Status:        detail.Status,
		IsDemo:        detail.IsDemo,
		Notes:         detail.Notes,
		BookedAt:      FormatLongDate(detail.CreatedAt),
	}
	if forTutor {
		out.TuteeName = detail.TuteeName()
	} else {
		out.TutorName = detail.TutorName()
	}
	return out
}

func BookedClassesToResponse(details []*repository.BookingDetail, forTutor bool) []BookedClassResponse {
	out := make([]BookedClassResponse, 0, len(details))
	for _, detail := range details {
		out = append(out, BookedClassToResponse(detail, forTutor))
	}
	return out
}

func CompletedClassToResponse(detail *repository.BookingDetail, forTutor bool) CompletedClassResponse {
	out := CompletedClassResponse{
		ID:      detail.ID.String(),
		Subject: detail.Subject,
		Date:    FormatLongDate(detail.Slot.Date),
		Time:    FormatTimeRange(detail.Slot.StartTime, detail.Slot.EndTime),
		IsDemo:  detail.IsDemo,
	}
	if detail.CompletedAt != nil {
		out.CompletedAt = FormatCompletedAt(*detail.CompletedAt)
	}
	if forTutor {
		out.TuteeName = detail.TuteeName()
	} else {
		out.TutorName = detail.TutorName()
	}
	return out
}

func CompletedClassesToResponse(details []*repository.BookingDetail, forTutor bool) []CompletedClassResponse {
	out := make([]CompletedClassResponse, 0, len(details))
	for _, detail := range details {
		out = append(out, CompletedClassToResponse(detail, forTutor))
	}
	return out
}
