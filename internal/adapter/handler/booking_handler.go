package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nokras/hotel-booking/internal/core/domain"
	"github.com/nokras/hotel-booking/internal/core/services"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /listings", h.ListListings)
	mux.HandleFunc("GET /listings/{id}", h.GetListing)
	mux.HandleFunc("GET /availability", h.CheckAvailability)
	mux.HandleFunc("POST /bookings", h.CreateBooking)
	mux.HandleFunc("GET /bookings", h.ListBookings)
	mux.HandleFunc("POST /bookings/{id}/confirm", h.ConfirmBooking)
	mux.HandleFunc("POST /bookings/{id}/cancel", h.CancelBooking)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, domain.ErrRoomUnavailable),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrHoldExpired):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrPastDate),
		errors.Is(err, domain.ErrMinimumStay),
		errors.Is(err, domain.ErrInvalidGuests),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrInvalidContact):
		status = http.StatusBadRequest
		msg = err.Error()
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, value)
}

func (h *BookingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.ListListings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listings)
}

func (h *BookingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.FindListing(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	checkIn, err := parseDate(q.Get("check_in"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid check_in date"})
		return
	}

	checkOut, err := parseDate(q.Get("check_out"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid check_out date"})
		return
	}

	available, err := h.svc.CheckAvailability(r.Context(), q.Get("listing_id"), checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

type createBookingBody struct {
	ListingID string         `json:"listing_id"`
	CheckIn   string         `json:"check_in"`
	CheckOut  string         `json:"check_out"`
	Guests    domain.Guests  `json:"guests"`
	Contact   domain.Contact `json:"contact"`
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var body createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	checkIn, err := parseDate(body.CheckIn)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid check_in date"})
		return
	}

	checkOut, err := parseDate(body.CheckOut)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid check_out date"})
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), services.CreateBookingRequest{
		ListingID: body.ListingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    body.Guests,
		Contact:   body.Contact,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	if listingID := r.URL.Query().Get("listing_id"); listingID != "" {
		bookings, err := h.svc.GetBookingsForListing(r.Context(), listingID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, bookings)
		return
	}

	bookings, err := h.svc.GetAllBookings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
		return
	}

	booking, err := h.svc.ConfirmBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
		return
	}

	if err := h.svc.CancelBooking(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.BookingCancelled)})
}
