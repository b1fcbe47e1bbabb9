package httpapi

import (
	"time"

	"github.com/Spok95/school-attendance/internal/models"
)

// Ответы собираются в явные структуры границы: наружу уходят camelCase-поля
// и RFC3339-время, пароли наружу не отдаём.

const dateLayout = "2006-01-02"

type teacherJSON struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type studentJSON struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

type parentJSON struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Phone      string    `json:"phone"`
	StudentIDs []string  `json:"studentIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

type subjectJSON struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	TeacherID          string                `json:"teacherId"`
	StudentIDs         []string              `json:"studentIds"`
	Schedule           []models.ScheduleRule `json:"schedule"`
	StartDate          string                `json:"startDate"`
	PeriodicityEndDate string                `json:"periodicityEndDate"`
	Active             bool                  `json:"active"`
}

type attendanceJSON struct {
	StudentID string `json:"studentId"`
	Present   bool   `json:"present"`
}

type lessonJSON struct {
	ID              string           `json:"id"`
	SubjectID       string           `json:"subjectId"`
	SubjectName     string           `json:"subjectName"`
	TeacherID       string           `json:"teacherId"`
	StudentIDs      []string         `json:"studentIds"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         time.Time        `json:"endTime"`
	Status          string           `json:"status"`
	Attendance      []attendanceJSON `json:"attendance,omitempty"`
	Photos          []string         `json:"photos,omitempty"`
	ReportUpdatedAt *time.Time       `json:"reportUpdatedAt,omitempty"`
}

func toTeacherJSON(t models.TeacherAccount) teacherJSON {
	return teacherJSON{ID: t.ID, FullName: t.FullName, Phone: t.Phone, CreatedAt: t.CreatedAt}
}

func toStudentJSON(s models.StudentAccount) studentJSON {
	return studentJSON{ID: s.ID, FullName: s.FullName, CreatedAt: s.CreatedAt}
}

func toParentJSON(p models.ParentAccount) parentJSON {
	ids := p.StudentIDs
	if ids == nil {
		ids = []string{}
	}
	return parentJSON{ID: p.ID, FullName: p.FullName, Phone: p.Phone, StudentIDs: ids, CreatedAt: p.CreatedAt}
}

func toSubjectJSON(s models.Subject) subjectJSON {
	return subjectJSON{
		ID:                 s.ID,
		Name:               s.Name,
		TeacherID:          s.TeacherID,
		StudentIDs:         s.StudentIDs,
		Schedule:           s.Schedule,
		StartDate:          s.StartDate.Format(dateLayout),
		PeriodicityEndDate: s.PeriodicityEndDate.Format(dateLayout),
		Active:             s.Active,
	}
}

func toLessonJSON(l models.LessonWithSubject) lessonJSON {
	out := lessonJSON{
		ID:              l.ID,
		SubjectID:       l.SubjectID,
		SubjectName:     l.SubjectName,
		TeacherID:       l.TeacherID,
		StudentIDs:      l.StudentIDs,
		StartTime:       l.StartTime,
		EndTime:         l.EndTime,
		Status:          string(l.Status),
		Photos:          l.Photos,
		ReportUpdatedAt: l.ReportUpdatedAt,
	}
	for _, a := range l.Attendance {
		out.Attendance = append(out.Attendance, attendanceJSON{StudentID: a.StudentID, Present: a.Present})
	}
	return out
}

func toLessonsJSON(lessons []models.LessonWithSubject) []lessonJSON {
	out := make([]lessonJSON, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, toLessonJSON(l))
	}
	return out
}
