package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"navalha/internal/availability"
	"navalha/internal/metrics"
	"navalha/internal/model"
)

// scheduleRuleRequest carries the hours for a weekday or a single
// date. Weekday is used for weekly rules, Date for exceptions.
type scheduleRuleRequest struct {
	Weekday    *int    `json:"weekday,omitempty"` // 0 = Sunday
	Date       string  `json:"date,omitempty"`    // YYYY-MM-DD
	OpensAt    string  `json:"opens_at"`
	ClosesAt   string  `json:"closes_at"`
	LunchStart string  `json:"lunch_start,omitempty"`
	LunchEnd   string  `json:"lunch_end,omitempty"`
	IsClosed   bool    `json:"is_closed"`
	BarberIDs  []int64 `json:"barber_ids,omitempty"`
}

func (s *Server) handleWeeklyRules(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("weekly_rules_list")
		rules, err := s.db.ListWeeklyRules(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list weekly rules")
			return
		}
		if rules == nil {
			rules = []model.WeeklyRule{}
		}
		writeJSON(w, http.StatusOK, rules)

	case http.MethodPut:
		metrics.IncHTTP("weekly_rules_upsert")
		var req scheduleRuleRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Weekday == nil || *req.Weekday < 0 || *req.Weekday > 6 {
			writeError(w, http.StatusBadRequest, "weekday must be 0 (Sunday) through 6 (Saturday)")
			return
		}
		if !req.IsClosed {
			if err := availability.ValidateHours(req.OpensAt, req.ClosesAt, req.LunchStart, req.LunchEnd); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		rule := &model.WeeklyRule{
			Weekday:    time.Weekday(*req.Weekday),
			OpensAt:    req.OpensAt,
			ClosesAt:   req.ClosesAt,
			LunchStart: req.LunchStart,
			LunchEnd:   req.LunchEnd,
			IsClosed:   req.IsClosed,
			BarberIDs:  req.BarberIDs,
		}
		if err := s.db.UpsertWeeklyRule(r.Context(), rule); err != nil {
			s.log.Error().Err(err).Int("weekday", *req.Weekday).Msg("failed to save weekly rule")
			writeError(w, http.StatusInternalServerError, "failed to save weekly rule")
			return
		}

		// A weekly rule governs every future date on that weekday,
		// so no cached grid survives the edit.
		s.cache.InvalidateAll(r.Context())
		s.log.Info().Int("weekday", *req.Weekday).Bool("closed", req.IsClosed).Msg("weekly rule saved")
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleExceptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("exceptions_list")
		from, to, ok := s.parseRangeParams(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "from and to are required in YYYY-MM-DD format")
			return
		}
		exceptions, err := s.db.ListDateExceptions(r.Context(), from, to)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list exceptions")
			return
		}
		if exceptions == nil {
			exceptions = []model.DateException{}
		}
		writeJSON(w, http.StatusOK, exceptions)

	case http.MethodPost:
		metrics.IncHTTP("exceptions_upsert")
		var req scheduleRuleRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		date, err := time.ParseInLocation("2006-01-02", req.Date, s.resolver.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, "date is required in YYYY-MM-DD format")
			return
		}
		if !req.IsClosed {
			if err := availability.ValidateHours(req.OpensAt, req.ClosesAt, req.LunchStart, req.LunchEnd); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		exception := &model.DateException{
			Date:       date,
			Weekday:    date.Weekday(),
			OpensAt:    req.OpensAt,
			ClosesAt:   req.ClosesAt,
			LunchStart: req.LunchStart,
			LunchEnd:   req.LunchEnd,
			IsClosed:   req.IsClosed,
			BarberIDs:  req.BarberIDs,
		}
		if err := s.db.UpsertDateException(r.Context(), exception); err != nil {
			s.log.Error().Err(err).Str("date", req.Date).Msg("failed to save exception")
			writeError(w, http.StatusInternalServerError, "failed to save exception")
			return
		}

		s.cache.InvalidateDay(r.Context(), 0, date)
		s.log.Info().Str("date", req.Date).Bool("closed", req.IsClosed).Msg("date exception saved")
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleExceptionByDate serves GET and DELETE for one exception.
// The date rides in the path: /api/schedule/exceptions/2026-09-07.
func (s *Server) handleExceptionByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := strings.TrimPrefix(r.URL.Path, "/api/schedule/exceptions/")
	date, err := time.ParseInLocation("2006-01-02", dateStr, s.resolver.Location())
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		metrics.IncHTTP("exception_get")
		exception, err := s.db.GetDateException(r.Context(), date)
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "no exception for this date")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load exception")
			return
		}
		writeJSON(w, http.StatusOK, exception)

	case http.MethodDelete:
		metrics.IncHTTP("exception_delete")
		if err := s.db.DeleteDateException(r.Context(), date); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "no exception for this date")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to delete exception")
			return
		}

		s.cache.InvalidateDay(r.Context(), 0, date)
		s.log.Info().Str("date", dateStr).Msg("date exception removed")
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// parseRangeParams reads from/to query parameters. Missing values
// default to today and today+30d.
func (s *Server) parseRangeParams(r *http.Request) (time.Time, time.Time, bool) {
	loc := s.resolver.Location()
	now := s.resolver.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 30)

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	return from, to, true
}

func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
