package response

import (
	"tutorhub/internal/data/entity"
	"tutorhub/internal/data/repository"
)

type AvailabilityResponse struct {
	ID            string            `json:"id"`
	Date          string            `json:"date"`
	FormattedDate string            `json:"formatted_date"`
	DayName       string            `json:"day_name"`
	StartTime     string            `json:"start_time"`
	EndTime       string            `json:"end_time"`
	FormattedTime string            `json:"formatted_time"`
	Status        entity.SlotStatus `json:"status"`
}

type DemoSessionResponse struct {
	ID            string `json:"id"`
	TutorID       string `json:"tutor_id"`
	TutorName     string `json:"tutor_name"`
	Subject       string `json:"subject"`
	Date          string `json:"date"`
	FormattedDate string `json:"formatted_date"`
	DayName       string `json:"day_name"`
	Time          string `json:"time"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

func SlotToResponse(slot *entity.AvailabilitySlot) AvailabilityResponse {
	return AvailabilityResponse{
		ID:            slot.ID.String(),
		Date:          FormatDate(slot.Date),
		FormattedDate: FormatLongDate(slot.Date),
		DayName:       DayName(slot.Date),
		StartTime:     FormatClock(slot.StartTime),
		EndTime:       FormatClock(slot.EndTime),
		FormattedTime: FormatTimeRange(slot.StartTime, slot.EndTime),
		Status:        slot.Status,
	}
}

func SlotsToResponse(slots []*entity.AvailabilitySlot) []AvailabilityResponse {
	out := make([]AvailabilityResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotToResponse(slot))
	}
	return out
}

func DemoSlotToResponse(row *repository.DemoSlotRow) DemoSessionResponse {
	return DemoSessionResponse{
		ID:            row.ID.String(),
		TutorID:       row.TutorID.String(),
		TutorName:     row.TutorName(),
		Subject:       row.Subject,
		Date:          FormatDate(row.Date),
		FormattedDate: FormatLongDate(row.Date),
		DayName:       DayName(row.Date),
		Time:          FormatTimeRange(row.StartTime, row.EndTime),
		StartTime:     FormatClock(row.StartTime),
		EndTime:       FormatClock(row.EndTime),
	}
}

func DemoSlotsToResponse(rows []*repository.DemoSlotRow) []DemoSessionResponse {
	out := make([]DemoSessionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, DemoSlotToResponse(row))
	}
	return out
}
