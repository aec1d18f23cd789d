package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"navalha/internal/metrics"
	"navalha/internal/model"
)

func (s *Server) handleBarbers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("barbers_list")
		barbers, err := s.db.ListActiveBarbers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list barbers")
			return
		}
		if barbers == nil {
			barbers = []model.Barber{}
		}
		writeJSON(w, http.StatusOK, barbers)

	case http.MethodPost:
		metrics.IncHTTP("barbers_create")
		var barber model.Barber
		if err := decodeBody(r, &barber); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if barber.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		if err := s.db.CreateBarber(r.Context(), &barber); err != nil {
			s.log.Error().Err(err).Str("name", barber.Name).Msg("failed to create barber")
			writeError(w, http.StatusInternalServerError, "failed to create barber")
			return
		}
		writeJSON(w, http.StatusOK, barber)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBarberByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/barbers/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("barber_get")
		barber, err := s.db.GetBarber(r.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "barber not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load barber")
			return
		}
		writeJSON(w, http.StatusOK, barber)

	case http.MethodDelete:
		metrics.IncHTTP("barber_deactivate")
		if err := s.db.DeactivateBarber(r.Context(), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "barber not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to deactivate barber")
			return
		}
		s.log.Info().Int64("barber_id", id).Msg("barber deactivated")
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("services_list")
		services, err := s.db.ListActiveServices(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list services")
			return
		}
		if services == nil {
			services = []model.Service{}
		}
		writeJSON(w, http.StatusOK, services)

	case http.MethodPost:
		metrics.IncHTTP("services_create")
		var service model.Service
		if err := decodeBody(r, &service); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if service.Name == "" || service.DurationMinutes <= 0 {
			writeError(w, http.StatusBadRequest, "name and a positive duration_minutes are required")
			return
		}
		if err := s.db.CreateService(r.Context(), &service); err != nil {
			s.log.Error().Err(err).Str("name", service.Name).Msg("failed to create service")
			writeError(w, http.StatusInternalServerError, "failed to create service")
			return
		}
		writeJSON(w, http.StatusOK, service)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleServiceByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/services/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("service_get")
		service, err := s.db.GetService(r.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load service")
			return
		}
		writeJSON(w, http.StatusOK, service)

	case http.MethodDelete:
		metrics.IncHTTP("service_deactivate")
		if err := s.db.DeactivateService(r.Context(), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "service not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to deactivate service")
			return
		}
		s.log.Info().Int64("service_id", id).Msg("service deactivated")
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func pathID(path, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
