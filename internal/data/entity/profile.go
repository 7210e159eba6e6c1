package entity

import (
	"github.com/google/uuid"
)

// TutorProfile holds tutor attributes. The owning user carries identity and
// name; slots reference the profile, not the user.
type TutorProfile struct {
	Base
	UserID     uuid.UUID `db:"user_id"`
	Subject    string    `db:"subject"`
	Department string    `db:"department"`
	Bio        string    `db:"bio"`
	Contact    string    `db:"contact"`
}

type TuteeProfile struct {
	Base
	UserID   uuid.UUID `db:"user_id"`
	Semester string    `db:"semester"`
	Contact  string    `db:"contact"`
}
