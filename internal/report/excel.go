// Package report builds downloadable day-agenda spreadsheets for
// the front desk.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"navalha/internal/model"
)

var agendaColumns = []string{
	"Time", "Barber", "Service", "Client", "Phone", "Status", "Code",
}

// DayAgenda renders one sheet per day with every active appointment.
type DayAgenda struct {
	file  *excelize.File
	sheet string
	row   int
}

// NewDayAgenda creates an agenda workbook for one date. The sheet is
// named after the date; Excel caps sheet names at 31 chars, which a
// date never hits.
func NewDayAgenda(date time.Time) (*DayAgenda, error) {
	a := &DayAgenda{
		file:  excelize.NewFile(),
		sheet: date.Format("2006-01-02"),
		row:   1,
	}
	a.file.SetSheetName("Sheet1", a.sheet)

	if err := a.writeHeader(); err != nil {
		a.file.Close()
		return nil, err
	}
	return a, nil
}

func (a *DayAgenda) writeHeader() error {
	for i, col := range agendaColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, a.row)
		if err != nil {
			return err
		}
		if err := a.file.SetCellValue(a.sheet, cell, col); err != nil {
			return err
		}
	}

	style, err := a.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, a.row)
		endCell, _ := excelize.CoordinatesToCellName(len(agendaColumns), a.row)
		_ = a.file.SetCellStyle(a.sheet, startCell, endCell, style)
	}

	a.row++
	return nil
}

// AddAppointment appends one agenda row.
func (a *DayAgenda) AddAppointment(appt *model.Appointment, barberName string, loc *time.Location) error {
	start := appt.StartTime.In(loc)
	end := appt.EndTime.In(loc)
	values := []any{
		fmt.Sprintf("%s - %s", start.Format("15:04"), end.Format("15:04")),
		barberName,
		appt.ServiceName,
		appt.ClientName,
		appt.ClientPhone,
		appt.Status,
		appt.Code,
	}

	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, a.row)
		if err != nil {
			return err
		}
		if err := a.file.SetCellValue(a.sheet, cell, val); err != nil {
			return err
		}
	}

	a.row++
	return nil
}

// Save writes the workbook to wr.
func (a *DayAgenda) Save(wr io.Writer) error {
	return a.file.Write(wr)
}

// Close releases resources.
func (a *DayAgenda) Close() error {
	return a.file.Close()
}
