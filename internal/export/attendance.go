package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/school-attendance/internal/models"
	"github.com/xuri/excelize/v2"
)

const attendanceSheet = "Посещаемость"

// AttendanceWorkbook строит книгу с одним листом: по строке на урок,
// посещаемость — сводкой «присутствовало/всего» и списком отсутствовавших.
func AttendanceWorkbook(lessons []models.LessonWithSubject, studentNames map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []string{"Дата", "Время", "Предмет", "Статус", "Присутствовало", "Отсутствовали", "Фото"}
	for col, h := range header {
		cell := fmt.Sprintf("%s1", columName(col+1))
		if err := f.SetCellStr(attendanceSheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}

	for r, l := range lessons {
		row := []string{
			l.StartTime.Format("02.01.2006"),
			l.StartTime.Format("15:04") + "–" + l.EndTime.Format("15:04"),
			l.SubjectName,
			statusLabel(l.Status),
			presentSummary(l),
			absentList(l, studentNames),
			strconv.Itoa(len(l.Photos)),
		}
		for c, val := range row {
			cell := fmt.Sprintf("%s%d", columName(c+1), r+2)
			if err := f.SetCellStr(attendanceSheet, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := ApplyDefaultExcelFormatting(f, attendanceSheet); err != nil {
		return nil, err
	}
	return f, nil
}

func statusLabel(s models.LessonStatus) string {
	switch s {
	case models.LessonScheduled:
		return "запланирован"
	case models.LessonCompleted:
		return "проведён"
	case models.LessonCancelled:
		return "отменён"
	}
	return string(s)
}

func presentSummary(l models.LessonWithSubject) string {
	if l.Status != models.LessonCompleted {
		return "—"
	}
	present := 0
	for _, a := range l.Attendance {
		if a.Present {
			present++
		}
	}
	return fmt.Sprintf("%d из %d", present, len(l.StudentIDs))
}

func absentList(l models.LessonWithSubject, names map[string]string) string {
	if l.Status != models.LessonCompleted {
		return ""
	}
	var absent []string
	for _, a := range l.Attendance {
		if a.Present {
			continue
		}
		if name, ok := names[a.StudentID]; ok && name != "" {
			absent = append(absent, name)
		} else {
			absent = append(absent, a.StudentID)
		}
	}
	return strings.Join(absent, ", ")
}
