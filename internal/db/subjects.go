package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Spok95/school-attendance/internal/models"
	"github.com/lib/pq"
)

func InsertSubject(ctx context.Context, database *sql.DB, s *models.Subject) (string, error) {
	id := NewID()
	scheduleJSON, err := json.Marshal(s.Schedule)
	if err != nil {
		return "", err
	}
	_, err = database.ExecContext(ctx, `
		INSERT INTO subjects (id, name, teacher_id, student_ids, schedule, start_date, periodicity_end_date, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, s.Name, s.TeacherID, pq.Array(s.StudentIDs), scheduleJSON,
		s.StartDate, s.PeriodicityEndDate, s.Active, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

func GetSubjectByID(ctx context.Context, database *sql.DB, id string) (*models.Subject, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, name, teacher_id, student_ids, schedule, start_date, periodicity_end_date, active, created_at
		FROM subjects WHERE id = $1
	`, id)

	var s models.Subject
	var scheduleJSON []byte
	if err := row.Scan(&s.ID, &s.Name, &s.TeacherID, pq.Array(&s.StudentIDs), &scheduleJSON,
		&s.StartDate, &s.PeriodicityEndDate, &s.Active, &s.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scheduleJSON, &s.Schedule); err != nil {
		return nil, err
	}
	return &s, nil
}

func ListSubjects(ctx context.Context, database *sql.DB) ([]models.Subject, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, teacher_id, student_ids, schedule, start_date, periodicity_end_date, active, created_at
		FROM subjects ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Subject
	for rows.Next() {
		var s models.Subject
		var scheduleJSON []byte
		if err := rows.Scan(&s.ID, &s.Name, &s.TeacherID, pq.Array(&s.StudentIDs), &scheduleJSON,
			&s.StartDate, &s.PeriodicityEndDate, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scheduleJSON, &s.Schedule); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateSubjectFields меняет только имя, учителя и состав учеников.
// Расписание и диапазон дат после создания не трогаем.
func UpdateSubjectFields(ctx context.Context, database *sql.DB, id, name, teacherID string, studentIDs []string) error {
	res, err := database.ExecContext(ctx, `
		UPDATE subjects SET name = $1, teacher_id = $2, student_ids = $3 WHERE id = $4
	`, name, teacherID, pq.Array(studentIDs), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func DeleteSubject(ctx context.Context, database *sql.DB, id string) error {
	res, err := database.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
