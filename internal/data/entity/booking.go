package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Booking is a tutee's claim on an availability slot. Tutor identity and
// subject are always read through the slot, never duplicated here.
type Booking struct {
	Base
	SlotID      uuid.UUID     `db:"slot_id"`
	TuteeID     uuid.UUID     `db:"tutee_id"`
	IsDemo      bool          `db:"is_demo"`
	Status      BookingStatus `db:"status"`
	Notes       string        `db:"notes"`
	CompletedAt *time.Time    `db:"completed_at"`
}
