package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/meridianadvisory/site-backend/internal/domain"
	"github.com/meridianadvisory/site-backend/internal/http/response"
	"github.com/meridianadvisory/site-backend/internal/service"
)

// SubmitBooking handles POST /api/book-consultation
func (h *Handlers) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingIntakeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.bookings.Submit(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to save booking")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       "Booking request received",
		"bookingId":     result.Booking.ID,
		"adminNotified": result.NotifyErr == nil,
	})
}

type confirmBookingReq struct {
	BookingID   string `json:"bookingId"`
	ConfirmedBy string `json:"confirmedBy"`
}

// ConfirmBooking handles POST /api/confirm-booking
func (h *Handlers) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	var req confirmBookingReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.BookingID) == "" {
		response.BadRequest(w, "bookingId is required")
		return
	}

	result, err := h.bookings.Confirm(r.Context(), req.BookingID, req.ConfirmedBy)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalError(w, "Failed to confirm booking")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Booking confirmed",
		"bookingId":    result.Booking.ID,
		"userNotified": result.NotifyErr == nil,
	})
}

// ListBookings handles GET /api/bookings
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var status *domain.BookingStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.BookingStatus(v)
		if s != domain.BookingPendingConfirmation && s != domain.BookingConfirmed {
			response.BadRequest(w, "Invalid status filter")
			return
		}
		status = &s
	}

	bookings, err := h.bookings.List(r.Context(), limit, offset, status)
	if err != nil {
		response.InternalError(w, "Failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"bookings": bookings,
	})
}

// GetBooking handles GET /api/bookings/{id}
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	booking, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalError(w, "Failed to load booking")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"booking": booking,
	})
}
