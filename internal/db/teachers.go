package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Spok95/school-attendance/internal/models"
)

func CreateTeacher(ctx context.Context, database *sql.DB, fullName, phone, password string) (string, error) {
	id := NewID()
	_, err := database.ExecContext(ctx, `
		INSERT INTO teachers (id, full_name, phone, password, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, fullName, phone, password, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

func GetTeacherByID(ctx context.Context, database *sql.DB, id string) (*models.TeacherAccount, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, full_name, phone, password, created_at FROM teachers WHERE id = $1
	`, id)
	return scanTeacher(row)
}

// FindTeacherByPhone — nil без ошибки, если учителя с таким телефоном нет.
func FindTeacherByPhone(ctx context.Context, database *sql.DB, phone string) (*models.TeacherAccount, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, full_name, phone, password, created_at FROM teachers WHERE phone = $1
	`, phone)
	t, err := scanTeacher(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func ListTeachers(ctx context.Context, database *sql.DB) ([]models.TeacherAccount, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, full_name, phone, password, created_at FROM teachers ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TeacherAccount
	for rows.Next() {
		var t models.TeacherAccount
		if err := rows.Scan(&t.ID, &t.FullName, &t.Phone, &t.Password, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTeacher меняет имя и телефон; пароль — только если передан непустой.
func UpdateTeacher(ctx context.Context, database *sql.DB, id, fullName, phone, password string) error {
	var res sql.Result
	var err error
	if password != "" {
		res, err = database.ExecContext(ctx, `
			UPDATE teachers SET full_name = $1, phone = $2, password = $3 WHERE id = $4
		`, fullName, phone, password, id)
	} else {
		res, err = database.ExecContext(ctx, `
			UPDATE teachers SET full_name = $1, phone = $2 WHERE id = $3
		`, fullName, phone, id)
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func DeleteTeacher(ctx context.Context, database *sql.DB, id string) error {
	res, err := database.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanTeacher(row *sql.Row) (*models.TeacherAccount, error) {
	var t models.TeacherAccount
	if err := row.Scan(&t.ID, &t.FullName, &t.Phone, &t.Password, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// requireRow превращает обновление нуля строк в sql.ErrNoRows.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
