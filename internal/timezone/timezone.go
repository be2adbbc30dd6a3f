package timezone

import (
	"time"
	_ "time/tzdata"
)

var DefaultTimezone = "America/Sao_Paulo"

// SetDefault troca o fuso padrão (config DEFAULT_TIMEZONE). Valores inválidos são ignorados.
func SetDefault(tz string) {
	if IsValid(tz) {
		DefaultTimezone = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// StartOfDay devolve 00:00 do dia de t no próprio fuso de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
