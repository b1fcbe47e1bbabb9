package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Spok95/school-attendance/internal/models"
	"github.com/lib/pq"
)

func CreateParent(ctx context.Context, database *sql.DB, fullName, phone, password string, studentIDs []string) (string, error) {
	id := NewID()
	if studentIDs == nil {
		studentIDs = []string{}
	}
	_, err := database.ExecContext(ctx, `
		INSERT INTO parents (id, full_name, phone, password, student_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, fullName, phone, password, pq.Array(studentIDs), time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

func GetParentByID(ctx context.Context, database *sql.DB, id string) (*models.ParentAccount, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, full_name, phone, password, student_ids, created_at FROM parents WHERE id = $1
	`, id)
	return scanParent(row)
}

// FindParentByPhone — nil без ошибки, если родителя с таким телефоном нет.
func FindParentByPhone(ctx context.Context, database *sql.DB, phone string) (*models.ParentAccount, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, full_name, phone, password, student_ids, created_at FROM parents WHERE phone = $1
	`, phone)
	p, err := scanParent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func ListParents(ctx context.Context, database *sql.DB) ([]models.ParentAccount, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, full_name, phone, password, student_ids, created_at FROM parents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ParentAccount
	for rows.Next() {
		var p models.ParentAccount
		if err := rows.Scan(&p.ID, &p.FullName, &p.Phone, &p.Password, pq.Array(&p.StudentIDs), &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func UpdateParent(ctx context.Context, database *sql.DB, id, fullName, phone, password string, studentIDs []string) error {
	if studentIDs == nil {
		studentIDs = []string{}
	}
	var res sql.Result
	var err error
	if password != "" {
		res, err = database.ExecContext(ctx, `
			UPDATE parents SET full_name = $1, phone = $2, password = $3, student_ids = $4 WHERE id = $5
		`, fullName, phone, password, pq.Array(studentIDs), id)
	} else {
		res, err = database.ExecContext(ctx, `
			UPDATE parents SET full_name = $1, phone = $2, student_ids = $3 WHERE id = $4
		`, fullName, phone, pq.Array(studentIDs), id)
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func DeleteParent(ctx context.Context, database *sql.DB, id string) error {
	res, err := database.ExecContext(ctx, `DELETE FROM parents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanParent(row *sql.Row) (*models.ParentAccount, error) {
	var p models.ParentAccount
	if err := row.Scan(&p.ID, &p.FullName, &p.Phone, &p.Password, pq.Array(&p.StudentIDs), &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
