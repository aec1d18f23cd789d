package api

import (
	"net/http"
	"strconv"
	"time"

	"navalha/internal/availability"
	"navalha/internal/cache"
	"navalha/internal/metrics"
)

// gridResponse is the availability payload served to all three
// consumers: client booking, manager grid, manager reschedule.
type gridResponse struct {
	availability.Grid
	BarberID        int64 `json:"barber_id,omitempty"`
	DurationMinutes int   `json:"duration_minutes"`
}

// handleAvailability returns the annotated slot grid for one day.
// GET /api/availability?date=YYYY-MM-DD&barber_id=N&service_id=N
func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

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

	duration := s.cfg.Booking.SlotMinutes
	if serviceIDStr := r.URL.Query().Get("service_id"); serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid service_id")
			return
		}
		service, err := s.db.GetService(r.Context(), serviceID)
		if err != nil {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		duration = service.DurationMinutes
	}

	key := cache.Key(barberID, date, duration)
	var cached gridResponse
	if s.cache.Get(r.Context(), key, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	grid, err := s.dayGrid(r, date, barberID, duration)
	if err != nil {
		s.log.Error().Err(err).Str("date", date.Format("2006-01-02")).Msg("availability resolution failed")
		writeError(w, http.StatusInternalServerError, "failed to resolve availability")
		return
	}

	resp := gridResponse{Grid: *grid, DurationMinutes: duration}
	if barberID != 0 {
		resp.BarberID = barberID
	}
	s.cache.Set(r.Context(), key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// dayGrid fetches the day's inputs and runs the pipeline.
func (s *Server) dayGrid(r *http.Request, date time.Time, barberID int64, duration int) (*availability.Grid, error) {
	ctx := r.Context()

	rules, err := s.db.ListWeeklyRules(ctx)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.db.ListDateExceptions(ctx, date, date)
	if err != nil {
		return nil, err
	}
	appointments, err := s.db.ListAppointmentsForDay(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	return s.resolver.DayGrid(date, rules, exceptions, appointments, s.cfg.Booking.SlotMinutes, duration, barberID)
}

func optionalID(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
