package response

import "tutorhub/internal/data/repository"

type TutorResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Department string `json:"department"`
	Bio        string `json:"bio,omitempty"`
	Contact    string `json:"contact,omitempty"`
}

func TutorToResponse(row *repository.TutorRow) TutorResponse {
	return TutorResponse{
		ID:         row.ID.String(),
		Name:       row.FullName(),
		Email:      row.Email,
		Subject:    row.Subject,
		Department: row.Department,
		Bio:        row.Bio,
		Contact:    row.Contact,
	}
}

func TutorsToResponse(rows []*repository.TutorRow) []TutorResponse {
	out := make([]TutorResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, TutorToResponse(row))
	}
	return out
}
