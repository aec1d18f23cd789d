package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"navalha/internal/availability"
	"navalha/internal/metrics"
	"navalha/internal/model"
)

// BookRequest is the request body for POST /api/appointments.
type BookRequest struct {
	BarberID     int64  `json:"barber_id"`
	ServiceID    int64  `json:"service_id,omitempty"`
	Date         string `json:"date"`  // YYYY-MM-DD
	Start        string `json:"start"` // HH:MM
	ClientName   string `json:"client_name"`
	ClientPhone  string `json:"client_phone,omitempty"`
	ClientChatID int64  `json:"client_chat_id,omitempty"`
	Comment      string `json:"comment,omitempty"`
}

// BookResponse is the response for POST /api/appointments.
type BookResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleAppointments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleBook(w, r)
	case http.MethodGet:
		s.handleListAppointments(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("book")

	var req BookRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, BookResponse{Error: "invalid JSON body"})
		return
	}

	if req.BarberID == 0 || req.Date == "" || req.Start == "" || req.ClientName == "" {
		writeJSON(w, http.StatusBadRequest, BookResponse{Error: "barber_id, date, start and client_name are required"})
		return
	}

	loc := s.resolver.Location()
	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Start, loc)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, BookResponse{Error: "invalid date or start; expected YYYY-MM-DD and HH:MM"})
		return
	}

	now := s.resolver.Now()
	if start.Before(now.Add(s.cfg.BookingMinAdvance())) {
		writeJSON(w, http.StatusBadRequest, BookResponse{Error: "slot is too soon to book"})
		return
	}
	if start.After(now.Add(s.cfg.BookingMaxAdvance())) {
		writeJSON(w, http.StatusBadRequest, BookResponse{Error: "slot is too far in the future"})
		return
	}

	barber, err := s.db.GetBarber(r.Context(), req.BarberID)
	if err != nil || !barber.IsActive {
		writeJSON(w, http.StatusNotFound, BookResponse{Error: "barber not found"})
		return
	}

	duration := s.cfg.Booking.SlotMinutes
	serviceName := ""
	if req.ServiceID != 0 {
		service, err := s.db.GetService(r.Context(), req.ServiceID)
		if err != nil || !service.IsActive {
			writeJSON(w, http.StatusNotFound, BookResponse{Error: "service not found"})
			return
		}
		duration = service.DurationMinutes
		serviceName = service.Name
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	grid, err := s.dayGrid(r, day, req.BarberID, duration)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to resolve schedule for booking")
		writeJSON(w, http.StatusInternalServerError, BookResponse{Error: "failed to check availability"})
		return
	}
	if grid.Closed {
		writeJSON(w, http.StatusConflict, BookResponse{Error: "the shop is closed that day"})
		return
	}
	if grid.BarberOff {
		writeJSON(w, http.StatusConflict, BookResponse{Error: "the barber does not work that day"})
		return
	}
	if !slotBookable(grid.Slots, req.Start) {
		writeJSON(w, http.StatusConflict, BookResponse{Error: "slot is not available"})
		return
	}

	// Re-check against the table; the grid is computed from a
	// snapshot and a concurrent booking may have landed since.
	free, err := s.db.IsSlotFree(r.Context(), req.BarberID, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, BookResponse{Error: "failed to check availability"})
		return
	}
	if !free {
		writeJSON(w, http.StatusConflict, BookResponse{Error: "slot is not available"})
		return
	}

	appointment := &model.Appointment{
		Code:         uuid.NewString(),
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		ServiceName:  serviceName,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientChatID: req.ClientChatID,
		StartTime:    start,
		EndTime:      end,
		Status:       model.AppointmentStatusConfirmed,
		Comment:      req.Comment,
	}
	if err := s.db.CreateAppointment(r.Context(), appointment); err != nil {
		s.log.Error().Err(err).Int64("barber_id", req.BarberID).Msg("failed to create appointment")
		writeJSON(w, http.StatusInternalServerError, BookResponse{Error: "failed to create appointment"})
		return
	}

	metrics.IncAppointmentCreated()
	s.cache.InvalidateDay(r.Context(), req.BarberID, start)

	s.log.Info().
		Str("code", appointment.Code).
		Int64("barber_id", req.BarberID).
		Time("start", start).
		Msg("appointment created")

	writeJSON(w, http.StatusOK, BookResponse{Success: true, Code: appointment.Code})
}

// slotBookable reports whether the grid lists an open slot at start.
func slotBookable(slots []availability.Slot, start string) bool {
	for i := range slots {
		if slots[i].Start == start {
			return slots[i].Available
		}
	}
	return false
}

// handleListAppointments returns active appointments for a day.
// GET /api/appointments?date=YYYY-MM-DD&barber_id=N
func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("appointments_list")

	date, ok := s.parseDateParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "date is required in YYYY-MM-DD format")
		return
	}
	barberID, err := optionalID(r.URL.Query().Get("barber_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid barber_id")
		return
	}

	appointments, err := s.db.ListAppointmentsForDay(r.Context(), barberID, date)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list appointments")
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	if appointments == nil {
		appointments = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, appointments)
}

// handleAppointmentByCode serves GET and DELETE for a single
// appointment addressed by its public code.
func (s *Server) handleAppointmentByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimPrefix(r.URL.Path, "/api/appointments/")
	if code == "" || strings.Contains(code, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("appointment_get")
		appointment, err := s.db.GetAppointmentByCode(r.Context(), code)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load appointment")
			return
		}
		writeJSON(w, http.StatusOK, appointment)

	case http.MethodDelete:
		metrics.IncHTTP("appointment_cancel")
		appointment, err := s.db.GetAppointmentByCode(r.Context(), code)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "appointment not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load appointment")
			return
		}
		if err := s.db.CancelAppointmentByCode(r.Context(), code); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusConflict, "appointment already canceled")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to cancel appointment")
			return
		}

		metrics.IncAppointmentCanceled()
		s.cache.InvalidateDay(r.Context(), appointment.BarberID, appointment.StartTime)

		s.log.Info().
			Str("code", code).
			Int64("barber_id", appointment.BarberID).
			Msg("appointment canceled")

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
