package entity

type UserRole string

const (
	RoleTutor UserRole = "Tutor"
	RoleTutee UserRole = "Tutee"
)

type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	FirstName    string   `db:"first_name"`
	LastName     string   `db:"last_name"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
