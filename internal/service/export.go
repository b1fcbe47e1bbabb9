package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Spok95/school-attendance/internal/ctxutil"
	"github.com/Spok95/school-attendance/internal/db"
	"github.com/Spok95/school-attendance/internal/export"
	"github.com/Spok95/school-attendance/internal/schedule"
	"github.com/xuri/excelize/v2"
)

// ExportAttendance собирает книгу посещаемости за закрытый диапазон дат.
func (s *Service) ExportAttendance(ctx context.Context, from, to time.Time) (*excelize.File, string, error) {
	if err := schedule.ValidateRange(from, to, 0); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrValidation, err)
	}
	start := schedule.StartOfDay(from)
	end := schedule.StartOfDay(to).AddDate(0, 0, 1).Add(-time.Millisecond)

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	lessons, err := db.ListLessonsBetween(dbCtx, s.DB, start, end)
	if err != nil {
		return nil, "", err
	}

	// Имена учеников для расшифровки отсутствовавших.
	idSet := map[string]struct{}{}
	for _, l := range lessons {
		for _, id := range l.StudentIDs {
			idSet[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	students, err := db.ListStudentsByIDs(dbCtx, s.DB, ids)
	if err != nil {
		return nil, "", err
	}
	names := make(map[string]string, len(students))
	for _, st := range students {
		names[st.ID] = st.FullName
	}

	f, err := export.AttendanceWorkbook(lessons, names)
	if err != nil {
		return nil, "", err
	}
	filename := export.BuildAttendanceReportFilename(start.Format("02.01.2006"), schedule.StartOfDay(to).Format("02.01.2006"))
	return f, filename, nil
}
