package schedule

import (
	"fmt"
	"time"

	"github.com/Spok95/school-attendance/internal/models"
)

// ValidateRules проверяет правила до генерации: день недели 0..6 (0 = воскресенье)
// и корректные "HH:mm". Пересечения интервалов намеренно не проверяются —
// два правила на один день дают два отдельных урока.
func ValidateRules(rules []models.ScheduleRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("расписание пустое")
	}
	for i, r := range rules {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			return fmt.Errorf("правило %d: день недели %d вне диапазона 0..6", i, r.DayOfWeek)
		}
		if _, _, err := ParseHHMM(r.StartTime); err != nil {
			return fmt.Errorf("правило %d: %w", i, err)
		}
		if _, _, err := ParseHHMM(r.EndTime); err != nil {
			return fmt.Errorf("правило %d: %w", i, err)
		}
	}
	return nil
}

// ValidateRange ограничивает длину диапазона дат: генератор сам по себе
// границу не навязывает, поэтому страхуемся от патологически больших диапазонов
// на уровне валидации.
func ValidateRange(startDate, endDate time.Time, maxDays int) error {
	start, end := StartOfDay(startDate), StartOfDay(endDate)
	if start.After(end) {
		return fmt.Errorf("дата начала позже даты окончания")
	}
	if maxDays > 0 {
		days := int(end.Sub(start)/(24*time.Hour)) + 1
		if days > maxDays {
			return fmt.Errorf("диапазон %d дней превышает предел %d", days, maxDays)
		}
	}
	return nil
}

// Expand разворачивает еженедельные правила в черновики уроков по каждому дню
// закрытого интервала [startDate, endDate]. На день попадает по одному уроку на
// каждое правило с совпадающим днём недели; порядок результата стабильный:
// по дате, внутри дня — в порядке правил на входе.
func Expand(startDate, endDate time.Time, rules []models.ScheduleRule, offsetHours int) ([]models.LessonDraft, error) {
	start, end := StartOfDay(startDate), StartOfDay(endDate)
	if start.After(end) {
		return nil, fmt.Errorf("дата начала позже даты окончания")
	}

	var drafts []models.LessonDraft
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		weekday := int(day.Weekday()) // 0 = воскресенье, как в правилах
		for _, r := range rules {
			if r.DayOfWeek != weekday {
				continue
			}
			st, err := Normalize(day, r.StartTime, offsetHours)
			if err != nil {
				return nil, err
			}
			et, err := Normalize(day, r.EndTime, offsetHours)
			if err != nil {
				return nil, err
			}
			drafts = append(drafts, models.LessonDraft{
				Date:      day,
				StartTime: st,
				EndTime:   et,
				Status:    models.LessonScheduled,
			})
		}
	}
	return drafts, nil
}
