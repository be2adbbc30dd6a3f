package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", Location("").String())
	assert.Equal(t, "America/Sao_Paulo", Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestStartOfDay(t *testing.T) {
	loc := Location("Europe/Lisbon")
	at := time.Date(2026, 5, 4, 17, 45, 12, 0, loc)

	got := StartOfDay(at)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, loc), got)
}
