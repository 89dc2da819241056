package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOf_UsesLocalTime(t *testing.T) {
	// 1 марта 01:00 UTC: в São Paulo ещё 28 февраля.
	instant := time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, Period{Year: 2025, Month: time.February}, Of(instant))
}

func TestPeriod_Add(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		n    int
		want Period
	}{
		{name: "same year", p: Period{2025, time.March}, n: 2, want: Period{2025, time.May}},
		{name: "back over year", p: Period{2025, time.February}, n: -3, want: Period{2024, time.November}},
		{name: "forward over year", p: Period{2024, time.December}, n: 1, want: Period{2025, time.January}},
		{name: "zero", p: Period{2025, time.July}, n: 0, want: Period{2025, time.July}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Add(tt.n))
		})
	}
}

func TestPeriod_Bounds(t *testing.T) {
	start, end := Period{2025, time.March}.Bounds()

	assert.Equal(t, time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC), end)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Fev", Period{2025, time.February}.ShortLabel())
	assert.Equal(t, "Dez", Period{2025, time.December}.ShortLabel())
	assert.Equal(t, "Março 2025", Period{2025, time.March}.Label())
}

func TestWindow(t *testing.T) {
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	got := Window(now, 6)

	assert.Equal(t, []Period{
		{2024, time.September},
		{2024, time.October},
		{2024, time.November},
		{2024, time.December},
		{2025, time.January},
		{2025, time.February},
	}, got)
	assert.Nil(t, Window(now, 0))
}
