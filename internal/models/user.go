package models

import "time"

type Role string

const (
	Admin   Role = "admin"
	Teacher Role = "teacher"
	Parent  Role = "parent"
)

// TeacherAccount — учитель. Телефон служит логином, пароль хранится как есть
// (упрощённая авторизация по требованиям).
type TeacherAccount struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	Phone     string    `db:"phone"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}

type StudentAccount struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	CreatedAt time.Time `db:"created_at"`
}

// ParentAccount — родитель, привязан к детям по их идентификаторам.
type ParentAccount struct {
	ID         string    `db:"id"`
	FullName   string    `db:"full_name"`
	Phone      string    `db:"phone"`
	Password   string    `db:"password"`
	StudentIDs []string  `db:"student_ids"`
	CreatedAt  time.Time `db:"created_at"`
}
