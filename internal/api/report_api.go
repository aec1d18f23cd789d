package api

import (
	"fmt"
	"net/http"

	"navalha/internal/metrics"
	"navalha/internal/report"
)

// handleDayReport streams the day agenda as an .xlsx workbook.
// GET /api/reports/day?date=YYYY-MM-DD&barber_id=N
func (s *Server) handleDayReport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("day_report")
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

	appointments, err := s.db.ListAppointmentsForDay(r.Context(), barberID, date)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list appointments for report")
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	// Resolve barber names once; the agenda repeats them per row.
	names := make(map[int64]string)
	for i := range appointments {
		id := appointments[i].BarberID
		if _, ok := names[id]; ok {
			continue
		}
		barber, err := s.db.GetBarber(r.Context(), id)
		if err != nil {
			names[id] = fmt.Sprintf("#%d", id)
			continue
		}
		names[id] = barber.Name
	}

	agenda, err := report.NewDayAgenda(date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	defer agenda.Close()

	loc := s.resolver.Location()
	for i := range appointments {
		appt := &appointments[i]
		if err := agenda.AddAppointment(appt, names[appt.BarberID], loc); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to build report")
			return
		}
	}

	filename := fmt.Sprintf("agenda-%s.xlsx", date.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := agenda.Save(w); err != nil {
		s.log.Error().Err(err).Msg("failed to stream report")
	}
}
