package export_test

import (
	"testing"
	"time"

	"github.com/Spok95/school-attendance/internal/export"
	"github.com/Spok95/school-attendance/internal/models"
)

func TestAttendanceWorkbook(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	lessons := []models.LessonWithSubject{
		{
			Lesson: models.Lesson{
				ID:         "656f1f77bcf86cd799439011",
				StudentIDs: []string{"s1", "s2", "s3"},
				StartTime:  start,
				EndTime:    start.Add(time.Hour),
				Status:     models.LessonCompleted,
				Attendance: []models.AttendanceEntry{
					{StudentID: "s1", Present: true},
					{StudentID: "s2", Present: false},
					{StudentID: "s3", Present: true},
				},
				Photos: []string{"https://cdn.test/a.jpg"},
			},
			SubjectName: "Математика",
		},
		{
			Lesson: models.Lesson{
				ID:         "656f1f77bcf86cd799439012",
				StudentIDs: []string{"s1"},
				StartTime:  start.AddDate(0, 0, 7),
				EndTime:    start.AddDate(0, 0, 7).Add(time.Hour),
				Status:     models.LessonScheduled,
			},
			SubjectName: "Математика",
		},
	}

	f, err := export.AttendanceWorkbook(lessons, map[string]string{"s2": "Петров Пётр"})
	if err != nil {
		t.Fatal(err)
	}

	check := func(cell, want string) {
		t.Helper()
		got, err := f.GetCellValue("Посещаемость", cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("ячейка %s: получили %q, ожидали %q", cell, got, want)
		}
	}

	check("A1", "Дата")
	check("A2", "15.01.2024")
	check("B2", "09:00–10:00")
	check("C2", "Математика")
	check("D2", "проведён")
	check("E2", "2 из 3")
	check("F2", "Петров Пётр")
	check("G2", "1")

	// Запланированный урок: сводки нет, отсутствовавших нет.
	check("D3", "запланирован")
	check("E3", "—")
	check("F3", "")
}

func TestBuildAttendanceReportFilename(t *testing.T) {
	got := export.BuildAttendanceReportFilename("01.01.2024", "31.01.2024")
	want := "Отчёт по посещаемости — 01.01.2024 — 31.01.2024.xlsx"
	if got != want {
		t.Fatalf("получили %q, ожидали %q", got, want)
	}

	// Недопустимые символы файловой системы заменяются.
	got = export.BuildAttendanceReportFilename("01/01", "")
	if got != "Отчёт по посещаемости — 01_01 — —.xlsx" {
		t.Fatalf("неожиданное имя файла: %q", got)
	}
}
