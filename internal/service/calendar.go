package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Spok95/school-attendance/internal/ctxutil"
	"github.com/Spok95/school-attendance/internal/db"
	"github.com/Spok95/school-attendance/internal/models"
	"github.com/Spok95/school-attendance/internal/schedule"
)

// LessonsForWeek — все уроки недели для админского календаря.
func (s *Service) LessonsForWeek(ctx context.Context, date time.Time) ([]models.LessonWithSubject, error) {
	from, to := schedule.WeekBounds(date)
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListLessonsBetween(dbCtx, s.DB, from, to)
}

// LessonsForTeacherWeek — уроки недели, закреплённые за учителем.
func (s *Service) LessonsForTeacherWeek(ctx context.Context, teacherID string, date time.Time) ([]models.LessonWithSubject, error) {
	from, to := schedule.WeekBounds(date)
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListLessonsForTeacher(dbCtx, s.DB, teacherID, from, to)
}

// ParentWeek — уроки недели, где записан хотя бы один ребёнок родителя,
// плюс список его детей для маскировки чужих отметок на клиенте.
type ParentWeek struct {
	Lessons      []models.LessonWithSubject
	MyStudentIDs []string
}

func (s *Service) LessonsForParentWeek(ctx context.Context, parentID string, date time.Time) (*ParentWeek, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	parent, err := db.GetParentByID(dbCtx, s.DB, parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: родитель %s", ErrNotFound, parentID)
		}
		return nil, fmt.Errorf("чтение родителя: %w", err)
	}
	if len(parent.StudentIDs) == 0 {
		return &ParentWeek{MyStudentIDs: []string{}}, nil
	}

	from, to := schedule.WeekBounds(date)
	lessons, err := db.ListLessonsForStudents(dbCtx, s.DB, parent.StudentIDs, from, to)
	if err != nil {
		return nil, err
	}
	return &ParentWeek{Lessons: lessons, MyStudentIDs: parent.StudentIDs}, nil
}
