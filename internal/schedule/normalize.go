package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultOffsetHours — фиксированное смещение школьного времени от UTC.
// Без базы таймзон и без перехода на летнее время: школа живёт в одном поясе.
const DefaultOffsetHours = 5

// ParseHHMM разбирает локальное время "HH:mm".
func ParseHHMM(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("время %q: ожидается формат HH:mm", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("время %q: %w", s, err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("время %q: %w", s, err)
	}
	if hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("время %q: час вне диапазона 0..23", s)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("время %q: минуты вне диапазона 0..59", s)
	}
	return hour, minute, nil
}

// Normalize переводит календарный день + локальное "HH:mm" в абсолютный момент UTC:
// стена часов минус offsetHours. Для ранних часов момент уходит в предыдущие
// календарные сутки UTC — это ожидаемо и не корректируется.
func Normalize(day time.Time, hhmm string, offsetHours int) (time.Time, error) {
	h, m, err := ParseHHMM(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, mon, d := day.UTC().Date()
	return time.Date(y, mon, d, h-offsetHours, m, 0, 0, time.UTC), nil
}

// StartOfDay обнуляет компонент времени (UTC).
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
