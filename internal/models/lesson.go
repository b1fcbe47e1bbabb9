package models

import "time"

type LessonStatus string

const (
	LessonScheduled LessonStatus = "scheduled"
	LessonCompleted LessonStatus = "completed"
	LessonCancelled LessonStatus = "cancelled"
)

// AttendanceEntry — отметка посещения одного ученика на уроке.
type AttendanceEntry struct {
	StudentID string `json:"studentId"`
	Present   bool   `json:"present"`
}

// Lesson — конкретное занятие, порождённое правилом расписания.
// TeacherID и StudentIDs — денормализованные копии с предмета: после того как
// урок ушёл в прошлое, он становится исторической записью и больше не меняется.
type Lesson struct {
	ID              string            `db:"id"`
	SubjectID       string            `db:"subject_id"`
	TeacherID       string            `db:"teacher_id"`
	StudentIDs      []string          `db:"student_ids"`
	StartTime       time.Time         `db:"start_time"`
	EndTime         time.Time         `db:"end_time"`
	Status          LessonStatus      `db:"status"`
	Attendance      []AttendanceEntry `db:"attendance"`
	Photos          []string          `db:"photos"`
	ReportUpdatedAt *time.Time        `db:"report_updated_at"`
}

// LessonWithSubject — урок вместе с именем предмета для календарных выборок.
type LessonWithSubject struct {
	Lesson
	SubjectName string `db:"subject_name"`
}

// LessonDraft — черновик урока из генератора расписания, ещё без идентификатора
// и привязки к предмету.
type LessonDraft struct {
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	Status    LessonStatus
}
