package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/Spok95/school-attendance/internal/models"
	"github.com/lib/pq"
)

func CreateStudent(ctx context.Context, database *sql.DB, fullName string) (string, error) {
	id := NewID()
	_, err := database.ExecContext(ctx, `
		INSERT INTO students (id, full_name, created_at) VALUES ($1, $2, $3)
	`, id, fullName, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

func ListStudents(ctx context.Context, database *sql.DB) ([]models.StudentAccount, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, full_name, created_at FROM students ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StudentAccount
	for rows.Next() {
		var s models.StudentAccount
		if err := rows.Scan(&s.ID, &s.FullName, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListStudentsByIDs — для отображения имён в отчётах и календарях.
func ListStudentsByIDs(ctx context.Context, database *sql.DB, ids []string) ([]models.StudentAccount, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := database.QueryContext(ctx, `
		SELECT id, full_name, created_at FROM students WHERE id = ANY($1) ORDER BY full_name
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StudentAccount
	for rows.Next() {
		var s models.StudentAccount
		if err := rows.Scan(&s.ID, &s.FullName, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func UpdateStudent(ctx context.Context, database *sql.DB, id, fullName string) error {
	res, err := database.ExecContext(ctx, `UPDATE students SET full_name = $1 WHERE id = $2`, fullName, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func DeleteStudent(ctx context.Context, database *sql.DB, id string) error {
	res, err := database.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
