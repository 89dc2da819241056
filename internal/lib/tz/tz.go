// Package tz нормализует даты между форматом хранения и форматом отображения.
//
// Все даты в базе хранятся в UTC без указания зоны. Все даты, которые видит
// или вводит пользователь, относятся к фиксированному часовому поясу
// America/Sao_Paulo, независимо от локали пользователя.
package tz

import (
	"errors"
	"strings"
	"time"
	// Встраивание базы часовых поясов, чтобы не зависеть от системного tzdata.
	_ "time/tzdata"
)

// Name — идентификатор IANA локального часового пояса приложения.
const Name = "America/Sao_Paulo"

// DateLayout — формат даты, в котором пользователь вводит даты в формах.
const DateLayout = "2006-01-02"

// Local — локальный часовой пояс отображения.
var Local = mustLoad(Name)

// ErrInvalidDate — строка не является датой в формате DateLayout.
var ErrInvalidDate = errors.New("invalid date")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("tz: cannot load location " + name + ": " + err.Error())
	}
	return loc
}

// Now возвращает текущее время в локальном часовом поясе.
func Now() time.Time {
	return time.Now().In(Local)
}

// ToLocal переводит момент хранения (UTC) в локальное время.
// Нулевое значение означает отсутствие даты и возвращается без изменений.
func ToLocal(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.In(Local)
}

// ToUTC переводит момент в UTC для хранения. Нулевое значение возвращается как есть.
func ToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}

// AsLocalWallClock интерпретирует показания часов t (без учёта его зоны) как
// локальное гражданское время. Несуществующие и неоднозначные моменты на
// переходах летнего времени нормализуются пакетом time и не приводят к панике.
func AsLocalWallClock(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), Local)
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	DateLayout,
}

// Parse разбирает сохранённую строку даты. Поддерживаются строки с зоной
// (RFC 3339, суффикс Z или смещение) и ISO-строки без зоны, которые считаются UTC.
// Для пустой или нераспознанной строки возвращается false.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02 15:04:05.999999999Z07:00", s); err == nil {
		return t.UTC(), true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseLocalDate разбирает дату из формы (YYYY-MM-DD) как локальную полночь
// и возвращает соответствующий момент в UTC.
func ParseLocalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(DateLayout) {
		return time.Time{}, ErrInvalidDate
	}
	naive, ok := Parse(s)
	if !ok {
		return time.Time{}, ErrInvalidDate
	}
	return ToUTC(AsLocalWallClock(naive)), nil
}

// StartOfLocalDay возвращает UTC-момент локальной полуночи дня, в который попадает t.
func StartOfLocalDay(t time.Time) time.Time {
	l := t.In(Local)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Local).UTC()
}

// DaysBetween возвращает число календарных локальных дней от from до to.
// Значение отрицательно, если to раньше from.
func DaysBetween(from, to time.Time) int {
	f := from.In(Local)
	t := to.In(Local)
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(td.Sub(fd).Hours() / 24)
}
