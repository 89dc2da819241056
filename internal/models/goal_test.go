package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGoal_Progress(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		current string
		want    float64
	}{
		{name: "zero target", target: "0", current: "50", want: 0},
		{name: "partial", target: "1000", current: "400", want: 40},
		{name: "exact", target: "250", current: "250", want: 100},
		{name: "exceeds target", target: "100", current: "180", want: 100},
		{name: "nothing saved", target: "100", current: "0", want: 0},
		{name: "fraction", target: "3", current: "1", want: 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{TargetAmount: dec(tt.target), CurrentAmount: dec(tt.current)}
			got := g.Progress()
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestGoal_Completed(t *testing.T) {
	g := Goal{TargetAmount: dec("100"), CurrentAmount: dec("99.99")}
	assert.False(t, g.Completed())

	g.CurrentAmount = dec("100")
	assert.True(t, g.Completed())

	g.IsCompleted = false
	g.Sync()
	assert.True(t, g.IsCompleted)
}

func TestGoal_DaysRemaining(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	g := Goal{TargetAmount: dec("1000"), CurrentAmount: dec("400")}
	_, ok := g.DaysRemaining(now)
	assert.False(t, ok)
	assert.False(t, g.IsOverdue(now))

	future := time.Date(2025, 3, 20, 3, 0, 0, 0, time.UTC)
	g.TargetDate = &future
	days, ok := g.DaysRemaining(now)
	require.True(t, ok)
	assert.Equal(t, 10, days)
	assert.False(t, g.IsOverdue(now))

	past := time.Date(2025, 3, 5, 3, 0, 0, 0, time.UTC)
	g.TargetDate = &past
	days, _ = g.DaysRemaining(now)
	assert.Equal(t, -5, days)
	assert.True(t, g.IsOverdue(now))

	g.CurrentAmount = dec("1000")
	assert.False(t, g.IsOverdue(now), "completed goals are never overdue")
}

func TestGoal_View(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	target := time.Date(2025, 4, 10, 3, 0, 0, 0, time.UTC)
	g := Goal{ID: 7, Title: "Reserva", TargetAmount: dec("1000"), CurrentAmount: dec("400"), TargetDate: &target}

	v := g.View(now)

	assert.Equal(t, int64(7), v.ID)
	assert.Equal(t, 40.0, v.Progress)
	assert.False(t, v.Completed)
	assert.False(t, v.Overdue)
	require.NotNil(t, v.DaysRemaining)
	assert.Equal(t, 31, *v.DaysRemaining)
}
