package slot

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Window é um intervalo [Start, End) em minutos do dia.
type Window struct {
	Start int
	End   int
}

// DayWindows recorta o expediente em horários de duração fixa, pulando a pausa.
// Depois da pausa a contagem recomeça no fim dela.
func DayWindows(wh models.WorkingHours) ([]Window, error) {
	if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return nil, nil
	}

	start, err := ParseClock(wh.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(wh.EndTime)
	if err != nil {
		return nil, err
	}

	duration := wh.SlotDuration
	if duration <= 0 {
		duration = models.DefaultSlotDuration
	}

	segments := []Window{{Start: start, End: end}}

	if wh.BreakStart != "" && wh.BreakEnd != "" {
		bStart, err := ParseClock(wh.BreakStart)
		if err != nil {
			return nil, err
		}
		bEnd, err := ParseClock(wh.BreakEnd)
		if err != nil {
			return nil, err
		}
		if bStart < bEnd {
			segments = []Window{
				{Start: start, End: min(bStart, end)},
				{Start: max(bEnd, start), End: end},
			}
		}
	}

	var out []Window
	for _, seg := range segments {
		for t := seg.Start; t+duration <= seg.End; t += duration {
			out = append(out, Window{Start: t, End: t + duration})
		}
	}
	return out, nil
}

// Generate monta os horários do barbeiro para as datas [from, to] (inclusive).
// Dias presentes em existing são pulados.
func Generate(
	barberID uint,
	shopID uint,
	hours []models.WorkingHours,
	from time.Time,
	to time.Time,
	existing map[string]bool,
) ([]models.Slot, error) {

	byWeekday := make(map[int]models.WorkingHours, len(hours))
	for _, wh := range hours {
		byWeekday[wh.Weekday] = wh
	}

	from = truncateDay(from)
	to = truncateDay(to)

	var slots []models.Slot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := day.Format(DateLayout)
		if existing[date] {
			continue
		}

		wh, ok := byWeekday[int(day.Weekday())]
		if !ok {
			continue
		}

		windows, err := DayWindows(wh)
		if err != nil {
			return nil, err
		}

		for _, w := range windows {
			slots = append(slots, models.Slot{
				BarberID:  barberID,
				ShopID:    shopID,
				Date:      date,
				StartTime: FormatClock(w.Start),
				EndTime:   FormatClock(w.End),
				Status:    models.SlotStatusAvailable,
			})
		}
	}

	return slots, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ===============================
// Working hours validation
// ===============================

const (
	MinSlotDuration = 5
	MaxSlotDuration = 240
)

func ValidateWorkingHours(wh models.WorkingHours) error {
	if wh.Weekday < 0 || wh.Weekday > 6 {
		return httperr.ErrBusiness("invalid_request")
	}
	if !wh.Active {
		return nil
	}

	start, err := ParseClock(wh.StartTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	end, err := ParseClock(wh.EndTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	if start >= end {
		return httperr.ErrBusiness("invalid_time_range")
	}

	if wh.SlotDuration != 0 && (wh.SlotDuration < MinSlotDuration || wh.SlotDuration > MaxSlotDuration) {
		return httperr.ErrBusiness("invalid_request")
	}

	if wh.BreakStart == "" && wh.BreakEnd == "" {
		return nil
	}
	if wh.BreakStart == "" || wh.BreakEnd == "" {
		return httperr.ErrBusiness("invalid_time_range")
	}

	bStart, err := ParseClock(wh.BreakStart)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	bEnd, err := ParseClock(wh.BreakEnd)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	if bStart >= bEnd || bStart < start || bEnd > end {
		return httperr.ErrBusiness("invalid_time_range")
	}

	return nil
}
