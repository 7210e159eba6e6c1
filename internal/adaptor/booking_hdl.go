package adaptor

import (
	"encoding/json"
	"net/http"

	"tutorhub/internal/dto/request"
	"tutorhub/internal/usecase"
	"tutorhub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// BookSlot handles POST /api/bookings (tutee only)
func (h *BookingHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BookSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.BookSlot(r.Context(), principal, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "book slot")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// CancelBooking handles DELETE /api/bookings/{id} (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.CancelBooking(r.Context(), principal, bookingID); err != nil {
		handleServiceError(h.log, w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CompleteBooking handles POST /api/bookings/{id}/complete (tutor only)
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	result, err := h.service.CompleteBooking(r.Context(), principal, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// ListBookings handles GET /api/bookings (protected, role-branched)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	bookings, err := h.service.ListBookings(r.Context(), principal, status)
	if err != nil {
		handleServiceError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListCompleted handles GET /api/bookings/completed (protected)
func (h *BookingHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipal(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	completed, err := h.service.ListCompleted(r.Context(), principal)
	if err != nil {
		handleServiceError(h.log, w, err, "list completed bookings")
		return
	}

	utils.ResponseSuccess(w, "success", completed)
}
