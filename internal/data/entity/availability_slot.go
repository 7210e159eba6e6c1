package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "Available"
	SlotBooked      SlotStatus = "Booked"
	SlotUnavailable SlotStatus = "Unavailable"
)

// AvailabilitySlot is a tutor-declared bookable time window on a calendar
// date. Date is the day at UTC midnight; StartTime/EndTime are full
// timestamps on that day. Status is Booked exactly while one non-cancelled
// booking references the slot.
type AvailabilitySlot struct {
	Base
	TutorID   uuid.UUID  `db:"tutor_id"`
	Date      time.Time  `db:"date"`
	StartTime time.Time  `db:"start_time"`
	EndTime   time.Time  `db:"end_time"`
	Status    SlotStatus `db:"status"`
}
