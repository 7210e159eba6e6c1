package adaptor

import (
	"encoding/json"
	"net/http"

	"tutorhub/internal/dto/request"
	"tutorhub/internal/usecase"
	"tutorhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// CreateSlot handles POST /api/availability (tutor only)
func (h *AvailabilityHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), principal, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create availability slot")
		return
	}

	utils.ResponseCreated(w, "success", slot)
}

// UpdateSlot handles PATCH /api/availability/{id} (tutor only)
func (h *AvailabilityHandler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	var req request.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.UpdateSlot(r.Context(), principal, slotID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update availability slot")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// DeleteSlot handles DELETE /api/availability/{id} (tutor only)
func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotID := chi.URLParam(r, "id")
	if slotID == "" {
		utils.ResponseBadRequest(w, "Slot ID is required", nil)
		return
	}

	if err := h.service.DeleteSlot(r.Context(), principal, slotID); err != nil {
		handleServiceError(h.log, w, err, "delete availability slot")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListSlots handles GET /api/availability (protected).
// Tutors see their own calendar by default; an explicit tutor_id shows
// anyone's. date takes precedence over from_date; with neither, listing
// starts today.
func (h *AvailabilityHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	filter := usecase.SlotListFilter{}

	if raw := query.Get("tutor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid tutor_id", nil)
			return
		}
		filter.TutorID = &id
	} else if principal.IsTutor() {
		filter.TutorID = &principal.ProfileID
	}

	if date := query.Get("date"); date != "" {
		filter.ExactDate = &date
	}
	if from := query.Get("from_date"); from != "" {
		filter.FromDate = &from
	}

	slots, err := h.service.ListSlots(r.Context(), filter)
	if err != nil {
		handleServiceError(h.log, w, err, "list availability slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// ListTutorSlots handles GET /api/tutors/{id}/availability (protected)
func (h *AvailabilityHandler) ListTutorSlots(w http.ResponseWriter, r *http.Request) {
	tutorID := chi.URLParam(r, "id")
	id, err := uuid.Parse(tutorID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid tutor ID", nil)
		return
	}

	filter := usecase.SlotListFilter{TutorID: &id}

	query := r.URL.Query()
	if date := query.Get("date"); date != "" {
		filter.ExactDate = &date
	}
	if from := query.Get("from_date"); from != "" {
		filter.FromDate = &from
	}

	slots, err := h.service.ListSlots(r.Context(), filter)
	if err != nil {
		handleServiceError(h.log, w, err, "list tutor availability")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// ListDemoSlots handles GET /api/demo-sessions (protected)
func (h *AvailabilityHandler) ListDemoSlots(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListDemoSlots(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list demo sessions")
		return
	}

	utils.ResponseSuccess(w, "success", sessions)
}
