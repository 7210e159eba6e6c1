package request

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Role      string `json:"role" validate:"required,oneof=Tutor Tutee"`

	// Tutor fields
	Subject    string `json:"subject" validate:"required_if=Role Tutor,max=100"`
	Department string `json:"department" validate:"max=100"`
	Bio        string `json:"bio" validate:"max=1000"`

	// Tutee fields
	Semester string `json:"semester" validate:"max=20"`

	Contact string `json:"contact" validate:"max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
