package schedule

import "time"

// WeekBounds возвращает границы недели [понедельник 00:00, воскресенье 23:59:59.999] UTC
// для календарных выборок. Неделя начинается с понедельника, как в календаре школы.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // понедельник → 0, воскресенье → 6
	monday := day.AddDate(0, 0, -offset)
	sundayEnd := monday.AddDate(0, 0, 7).Add(-time.Millisecond)
	return monday, sundayEnd
}
