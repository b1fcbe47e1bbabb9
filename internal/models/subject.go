package models

import "time"

// ScheduleRule — еженедельное правило расписания предмета.
// DayOfWeek: 0 = воскресенье … 6 = суббота. Время — локальное школьное "HH:mm".
type ScheduleRule struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Subject — предмет. Расписание и диапазон дат неизменяемы после создания:
// смена расписания означает создание нового предмета.
type Subject struct {
	ID                 string         `db:"id"`
	Name               string         `db:"name"`
	TeacherID          string         `db:"teacher_id"`
	StudentIDs         []string       `db:"student_ids"`
	Schedule           []ScheduleRule `db:"schedule"`
	StartDate          time.Time      `db:"start_date"`
	PeriodicityEndDate time.Time      `db:"periodicity_end_date"`
	Active             bool           `db:"active"`
	CreatedAt          time.Time      `db:"created_at"`
}
