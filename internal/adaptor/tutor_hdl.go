package adaptor

import (
	"net/http"

	"tutorhub/internal/usecase"
	"tutorhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TutorHandler struct {
	service usecase.TutorService
	log     *zap.Logger
}

func NewTutorHandler(service usecase.TutorService, log *zap.Logger) *TutorHandler {
	return &TutorHandler{
		service: service,
		log:     log.With(zap.String("handler", "tutor")),
	}
}

// ListTutors handles GET /api/tutors (protected)
func (h *TutorHandler) ListTutors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	tutors, err := h.service.ListTutors(r.Context(), query.Get("subject"), query.Get("department"))
	if err != nil {
		handleServiceError(h.log, w, err, "list tutors")
		return
	}

	utils.ResponseSuccess(w, "success", tutors)
}

// GetTutor handles GET /api/tutors/{id} (protected)
func (h *TutorHandler) GetTutor(w http.ResponseWriter, r *http.Request) {
	tutorID := chi.URLParam(r, "id")
	if tutorID == "" {
		utils.ResponseBadRequest(w, "Tutor ID is required", nil)
		return
	}

	tutor, err := h.service.GetTutor(r.Context(), tutorID)
	if err != nil {
		handleServiceError(h.log, w, err, "get tutor")
		return
	}

	utils.ResponseSuccess(w, "success", tutor)
}

// ListDepartments handles GET /api/departments (protected)
func (h *TutorHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.ListDepartments(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list departments")
		return
	}

	utils.ResponseSuccess(w, "success", departments)
}
