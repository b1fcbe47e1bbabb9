package schedule

import (
	"testing"
	"time"

	"github.com/Spok95/school-attendance/internal/models"
)

func TestExpand_ThreeMondays(t *testing.T) {
	// Сценарий из постановки: понедельники с 2024-01-01 по 2024-01-15 → ровно 3 урока.
	rules := []models.ScheduleRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}}
	drafts, err := Expand(date(2024, time.January, 1), date(2024, time.January, 15), rules, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 3 {
		t.Fatalf("ожидали 3 урока, получили %d", len(drafts))
	}
	wantDays := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
	}
	for i, d := range drafts {
		if !d.Date.Equal(wantDays[i]) {
			t.Errorf("урок %d: дата %v, ожидали %v", i, d.Date, wantDays[i])
		}
		// 09:00 локального = 04:00 UTC при смещении 5.
		if d.StartTime.Hour() != 4 || d.StartTime.Minute() != 0 {
			t.Errorf("урок %d: начало %v", i, d.StartTime)
		}
		if d.EndTime.Sub(d.StartTime) != time.Hour {
			t.Errorf("урок %d: длительность %v", i, d.EndTime.Sub(d.StartTime))
		}
		if d.Status != models.LessonScheduled {
			t.Errorf("урок %d: статус %q", i, d.Status)
		}
	}
}

func TestExpand_SingleDayRange(t *testing.T) {
	// 2024-01-07 — воскресенье (weekday 0).
	rules := []models.ScheduleRule{
		{DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		{DayOfWeek: 0, StartTime: "12:00", EndTime: "13:00"},
	}
	day := date(2024, time.January, 7)
	drafts, err := Expand(day, day, rules, 5)
	if err != nil {
		t.Fatal(err)
	}
	// Ровно правила воскресенья, в порядке входа.
	if len(drafts) != 2 {
		t.Fatalf("ожидали 2 урока, получили %d", len(drafts))
	}
	// 10:00 → 05:00 UTC, 12:00 → 07:00 UTC; правило понедельника не срабатывает.
	if drafts[0].StartTime.Hour() != 5 || drafts[1].StartTime.Hour() != 7 {
		t.Fatalf("часы начала: %d и %d", drafts[0].StartTime.Hour(), drafts[1].StartTime.Hour())
	}
}

func TestExpand_CountMatchesMatchingRules(t *testing.T) {
	// Две недели, по два правила на вторник и одно на пятницу:
	// итог = дни×совпадения = 2×2 + 2×1.
	rules := []models.ScheduleRule{
		{DayOfWeek: 2, StartTime: "08:00", EndTime: "09:00"},
		{DayOfWeek: 2, StartTime: "08:30", EndTime: "09:30"}, // пересечение допустимо, уроки не склеиваются
		{DayOfWeek: 5, StartTime: "15:00", EndTime: "16:00"},
	}
	drafts, err := Expand(date(2024, time.April, 1), date(2024, time.April, 14), rules, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 6 {
		t.Fatalf("ожидали 6 уроков, получили %d", len(drafts))
	}
	perDay := map[time.Time]int{}
	for _, d := range drafts {
		perDay[d.Date]++
		wd := int(d.Date.Weekday())
		if wd != 2 && wd != 5 {
			t.Errorf("урок на %v: день недели %d без правила", d.Date, wd)
		}
	}
	for day, n := range perDay {
		want := 1
		if int(day.Weekday()) == 2 {
			want = 2
		}
		if n != want {
			t.Errorf("%v: %d уроков, ожидали %d", day, n, want)
		}
	}
}

func TestExpand_NoMatchingDays(t *testing.T) {
	// Диапазон без суббот — пусто.
	rules := []models.ScheduleRule{{DayOfWeek: 6, StartTime: "09:00", EndTime: "10:00"}}
	drafts, err := Expand(date(2024, time.January, 7), date(2024, time.January, 12), rules, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 0 {
		t.Fatalf("ожидали пусто, получили %d", len(drafts))
	}
}

func TestExpand_Deterministic(t *testing.T) {
	rules := []models.ScheduleRule{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
		{DayOfWeek: 3, StartTime: "11:00", EndTime: "12:00"},
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "15:00"},
	}
	a, err := Expand(date(2024, time.February, 1), date(2024, time.March, 31), rules, 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Expand(date(2024, time.February, 1), date(2024, time.March, 31), rules, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("разная длина: %d и %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].StartTime.Equal(b[i].StartTime) || !a[i].EndTime.Equal(b[i].EndTime) || !a[i].Date.Equal(b[i].Date) {
			t.Fatalf("позиция %d различается: %+v и %+v", i, a[i], b[i])
		}
	}
	// Порядок: по дате, внутри дня — в порядке правил.
	for i := 1; i < len(a); i++ {
		if a[i].Date.Before(a[i-1].Date) {
			t.Fatalf("нарушен порядок дат на позиции %d", i)
		}
	}
}

func TestExpand_StartAfterEnd(t *testing.T) {
	rules := []models.ScheduleRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}}
	if _, err := Expand(date(2024, time.January, 15), date(2024, time.January, 1), rules, 5); err == nil {
		t.Fatal("ожидали ошибку для перевёрнутого диапазона")
	}
}

func TestValidateRules(t *testing.T) {
	if err := ValidateRules(nil); err == nil {
		t.Fatal("пустое расписание должно отклоняться")
	}
	if err := ValidateRules([]models.ScheduleRule{{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}}); err == nil {
		t.Fatal("день недели 7 должен отклоняться")
	}
	if err := ValidateRules([]models.ScheduleRule{{DayOfWeek: 1, StartTime: "25:00", EndTime: "10:00"}}); err == nil {
		t.Fatal("час 25 должен отклоняться")
	}
	if err := ValidateRules([]models.ScheduleRule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}}); err != nil {
		t.Fatalf("корректное правило отклонено: %v", err)
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(date(2024, 1, 1), date(2024, 12, 31), 366); err != nil {
		t.Fatalf("год должен проходить: %v", err)
	}
	if err := ValidateRange(date(2024, 1, 1), date(2026, 1, 1), 366); err == nil {
		t.Fatal("двухлетний диапазон должен отклоняться")
	}
	if err := ValidateRange(date(2024, 1, 2), date(2024, 1, 1), 0); err == nil {
		t.Fatal("перевёрнутый диапазон должен отклоняться")
	}
}
