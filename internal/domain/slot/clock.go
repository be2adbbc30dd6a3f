package slot

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseClock converte "HH:MM" em minutos desde a meia-noite.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// StartsAt devolve o instante de início de um horário no fuso informado.
func StartsAt(date, start string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+start, loc)
}
