package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Spok95/school-attendance/internal/models"
	"github.com/lib/pq"
)

// InsertLessons — пачечная вставка сгенерированных уроков одного предмета
// в одной транзакции: либо весь батч, либо ничего.
func InsertLessons(ctx context.Context, database *sql.DB, subjectID, teacherID string, studentIDs []string, drafts []models.LessonDraft) (int, error) {
	if len(drafts) == 0 {
		return 0, nil
	}
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO lessons (id, subject_id, teacher_id, student_ids, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, d := range drafts {
		if _, err := stmt.ExecContext(ctx, NewID(), subjectID, teacherID, pq.Array(studentIDs), d.StartTime, d.EndTime, string(d.Status)); err != nil {
			return 0, err
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func GetLessonByID(ctx context.Context, database *sql.DB, id string) (*models.Lesson, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, subject_id, teacher_id, student_ids, start_time, end_time, status, attendance, photos, report_updated_at
		FROM lessons WHERE id = $1
	`, id)

	var l models.Lesson
	var attendanceJSON []byte
	var reportAt sql.NullTime
	if err := row.Scan(&l.ID, &l.SubjectID, &l.TeacherID, pq.Array(&l.StudentIDs),
		&l.StartTime, &l.EndTime, &l.Status, &attendanceJSON, pq.Array(&l.Photos), &reportAt); err != nil {
		return nil, err
	}
	if len(attendanceJSON) > 0 {
		if err := json.Unmarshal(attendanceJSON, &l.Attendance); err != nil {
			return nil, err
		}
	}
	if reportAt.Valid {
		t := reportAt.Time
		l.ReportUpdatedAt = &t
	}
	return &l, nil
}

// ListLessonsBetween — все уроки в окне [from, to] с именем предмета.
// LEFT JOIN: у исторических уроков предмет может быть уже удалён.
func ListLessonsBetween(ctx context.Context, database *sql.DB, from, to time.Time) ([]models.LessonWithSubject, error) {
	return queryLessons(ctx, database, `
		SELECT l.id, l.subject_id, l.teacher_id, l.student_ids, l.start_time, l.end_time,
		       l.status, l.attendance, l.photos, l.report_updated_at, COALESCE(s.name, '')
		FROM lessons l
		LEFT JOIN subjects s ON s.id = l.subject_id
		WHERE l.start_time >= $1 AND l.start_time <= $2
		ORDER BY l.start_time
	`, from, to)
}

func ListLessonsForTeacher(ctx context.Context, database *sql.DB, teacherID string, from, to time.Time) ([]models.LessonWithSubject, error) {
	return queryLessons(ctx, database, `
		SELECT l.id, l.subject_id, l.teacher_id, l.student_ids, l.start_time, l.end_time,
		       l.status, l.attendance, l.photos, l.report_updated_at, COALESCE(s.name, '')
		FROM lessons l
		LEFT JOIN subjects s ON s.id = l.subject_id
		WHERE l.teacher_id = $1 AND l.start_time >= $2 AND l.start_time <= $3
		ORDER BY l.start_time
	`, teacherID, from, to)
}

// ListLessonsForStudents — уроки, куда записан хотя бы один из учеников
// (оператор пересечения массивов &&).
func ListLessonsForStudents(ctx context.Context, database *sql.DB, studentIDs []string, from, to time.Time) ([]models.LessonWithSubject, error) {
	return queryLessons(ctx, database, `
		SELECT l.id, l.subject_id, l.teacher_id, l.student_ids, l.start_time, l.end_time,
		       l.status, l.attendance, l.photos, l.report_updated_at, COALESCE(s.name, '')
		FROM lessons l
		LEFT JOIN subjects s ON s.id = l.subject_id
		WHERE l.student_ids && $1 AND l.start_time >= $2 AND l.start_time <= $3
		ORDER BY l.start_time
	`, pq.Array(studentIDs), from, to)
}

// PropagateSubjectToFutureLessons переносит нового учителя и состав учеников
// на ещё не проведённые уроки предмета. Завершённые уроки не трогаем:
// кто вёл и кто был записан — исторический факт.
func PropagateSubjectToFutureLessons(ctx context.Context, database *sql.DB, subjectID, teacherID string, studentIDs []string, from time.Time) (int64, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE lessons SET teacher_id = $1, student_ids = $2
		WHERE subject_id = $3 AND start_time >= $4 AND status = 'scheduled'
	`, teacherID, pq.Array(studentIDs), subjectID, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteLessonsFrom удаляет уроки предмета начиная с заданного момента,
// независимо от статуса. Прошедшие уроки остаются.
func DeleteLessonsFrom(ctx context.Context, database *sql.DB, subjectID string, from time.Time) (int64, error) {
	res, err := database.ExecContext(ctx, `
		DELETE FROM lessons WHERE subject_id = $1 AND start_time >= $2
	`, subjectID, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SaveAttendanceReport записывает отчёт учителя одним обновлением:
// посещаемость заменяется целиком, статус становится completed.
func SaveAttendanceReport(ctx context.Context, database *sql.DB, lessonID string, attendance []models.AttendanceEntry, photos []string, reportedAt time.Time) error {
	attendanceJSON, err := json.Marshal(attendance)
	if err != nil {
		return err
	}
	if photos == nil {
		photos = []string{}
	}
	res, err := database.ExecContext(ctx, `
		UPDATE lessons
		SET attendance = $1, photos = $2, status = 'completed', report_updated_at = $3
		WHERE id = $4
	`, attendanceJSON, pq.Array(photos), reportedAt, lessonID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func queryLessons(ctx context.Context, database *sql.DB, query string, args ...any) ([]models.LessonWithSubject, error) {
	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LessonWithSubject
	for rows.Next() {
		var l models.LessonWithSubject
		var attendanceJSON []byte
		var reportAt sql.NullTime
		if err := rows.Scan(&l.ID, &l.SubjectID, &l.TeacherID, pq.Array(&l.StudentIDs),
			&l.StartTime, &l.EndTime, &l.Status, &attendanceJSON, pq.Array(&l.Photos),
			&reportAt, &l.SubjectName); err != nil {
			return nil, err
		}
		if len(attendanceJSON) > 0 {
			if err := json.Unmarshal(attendanceJSON, &l.Attendance); err != nil {
				return nil, err
			}
		}
		if reportAt.Valid {
			t := reportAt.Time
			l.ReportUpdatedAt = &t
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
