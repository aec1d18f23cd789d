package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"navalha/internal/availability"
	"navalha/internal/cache"
	"navalha/internal/config"
	"navalha/internal/db"
)

// Server is the HTTP surface of the scheduling service. All three
// consumers of the old availability logic (client booking grid,
// manager grid, manager reschedule view) read from the same
// /api/availability endpoint now.
type Server struct {
	db       *db.DB
	resolver *availability.Resolver
	cache    *cache.AvailabilityCache
	cfg      *config.Config
	log      *zerolog.Logger
	mux      *http.ServeMux
}

// NewServer wires handlers onto a fresh mux.
func NewServer(database *db.DB, resolver *availability.Resolver, grids *cache.AvailabilityCache, cfg *config.Config, log *zerolog.Logger) *Server {
	s := &Server{
		db:       database,
		resolver: resolver,
		cache:    grids,
		cfg:      cfg,
		log:      log,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/availability", s.handleAvailability)
	s.mux.HandleFunc("/api/appointments", s.handleAppointments)
	s.mux.HandleFunc("/api/appointments/", s.handleAppointmentByCode)
	s.mux.HandleFunc("/api/schedule/weekly", s.handleWeeklyRules)
	s.mux.HandleFunc("/api/schedule/exceptions", s.handleExceptions)
	s.mux.HandleFunc("/api/schedule/exceptions/", s.handleExceptionByDate)
	s.mux.HandleFunc("/api/barbers", s.handleBarbers)
	s.mux.HandleFunc("/api/barbers/", s.handleBarberByID)
	s.mux.HandleFunc("/api/services", s.handleServices)
	s.mux.HandleFunc("/api/services/", s.handleServiceByID)
	s.mux.HandleFunc("/api/reports/day", s.handleDayReport)

	return s
}

// Handler returns the root handler for mounting or tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseDateParam reads a required date=YYYY-MM-DD query parameter
// into a midnight instant in the resolver's timezone.
func (s *Server) parseDateParam(r *http.Request) (time.Time, bool) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, false
	}
	loc := s.resolver.Location()
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), true
}
