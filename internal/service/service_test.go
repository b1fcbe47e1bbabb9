//go:build testutil
// +build testutil

package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Spok95/school-attendance/internal/db"
	"github.com/Spok95/school-attendance/internal/models"
	"github.com/Spok95/school-attendance/internal/service"
	"github.com/Spok95/school-attendance/internal/testutil/testdb"
	"go.uber.org/zap"
)

type fakeUploader struct {
	uploads int
	fail    bool
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if f.fail {
		return "", errors.New("хостинг недоступен")
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.uploads++
	return "https://cdn.test/" + filename, nil
}

func photo(name, body string) service.PhotoFile {
	return service.PhotoFile{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func newService(t *testing.T, h *testdb.DBHandle, up *fakeUploader) *service.Service {
	t.Helper()
	return &service.Service{
		DB:            h.DB,
		Log:           zap.NewNop(),
		Uploader:      up,
		TZOffsetHours: 5,
		MaxRangeDays:  366,
		AdminLogin:    "admin",
		AdminPassword: "secret",
	}
}

// Полный цикл предмета: создание с генерацией уроков, отчёт по одному уроку,
// обновление состава с переносом только на будущие запланированные,
// удаление с сохранением прошедшей истории.
func TestSubjectLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	up := &fakeUploader{}
	svc := newService(t, h, up)

	teacherID, err := svc.CreateTeacher(ctx, service.TeacherInput{FullName: "Иванова А.А.", Phone: "+79990000001", Password: "pw1"})
	if err != nil {
		t.Fatal(err)
	}
	teacher2ID, err := svc.CreateTeacher(ctx, service.TeacherInput{FullName: "Петров Б.Б.", Phone: "+79990000002", Password: "pw2"})
	if err != nil {
		t.Fatal(err)
	}
	var studentIDs []string
	for i := 0; i < 3; i++ {
		id, err := svc.CreateStudent(ctx, service.StudentInput{FullName: fmt.Sprintf("Ученик %d", i+1)})
		if err != nil {
			t.Fatal(err)
		}
		studentIDs = append(studentIDs, id)
	}

	// «Сегодня» — среда 10 января; понедельники января: 1, 8, 15, 22, 29.
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	subjectID, n, err := svc.CreateSubject(ctx, service.CreateSubjectInput{
		Name:       "Математика",
		TeacherID:  teacherID,
		StudentIDs: studentIDs,
		Schedule:   []models.ScheduleRule{{DayOfWeek: 1, StartTime: "14:00", EndTime: "15:00"}},
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("ожидали 5 уроков, получили %d", n)
	}

	monthFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	monthTo := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	lessons, err := db.ListLessonsBetween(ctx, h.DB, monthFrom, monthTo)
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) != 5 {
		t.Fatalf("ожидали 5 уроков в календаре, получили %d", len(lessons))
	}
	// 14:00 школьного времени при смещении +5 — это 09:00 UTC.
	if got := lessons[0].StartTime.UTC(); !got.Equal(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("первый урок начинается в %v, ожидали 2024-01-01 09:00 UTC", got)
	}

	// Отчёт по уроку 15 января: отметки заменяются целиком, фото
	// складываются, статус становится completed.
	var reportedID string
	for _, l := range lessons {
		if l.StartTime.UTC().Day() == 15 {
			reportedID = l.ID
		}
	}
	err = svc.RecordAttendance(ctx, now, reportedID, service.RecordAttendanceInput{
		AttendanceMap: map[string]bool{studentIDs[0]: true, studentIDs[1]: false},
		NewPhotos:     []service.PhotoFile{photo("board.jpg", "jpeg-bytes")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if up.uploads != 1 {
		t.Fatalf("ожидали 1 загрузку фото, было %d", up.uploads)
	}

	reported, err := db.GetLessonByID(ctx, h.DB, reportedID)
	if err != nil {
		t.Fatal(err)
	}
	if reported.Status != models.LessonCompleted {
		t.Fatalf("статус урока %s, ожидали completed", reported.Status)
	}
	// Карта из двух записей — в отчёте ровно две, без дописывания остальных.
	if len(reported.Attendance) != 2 {
		t.Fatalf("ожидали 2 отметки, получили %d", len(reported.Attendance))
	}
	if len(reported.Photos) != 1 || reported.Photos[0] != "https://cdn.test/board.jpg" {
		t.Fatalf("неожиданные фото: %v", reported.Photos)
	}
	if reported.ReportUpdatedAt == nil {
		t.Fatal("report_updated_at не проставлен")
	}

	// Смена учителя переносится только на будущие запланированные уроки:
	// 22 и 29 января. Прошедшие (1, 8) и проведённый (15) неизменны.
	err = svc.UpdateSubject(ctx, now, subjectID, service.UpdateSubjectInput{
		Name:       "Математика",
		TeacherID:  teacher2ID,
		StudentIDs: studentIDs[:2],
	})
	if err != nil {
		t.Fatal(err)
	}
	lessons, err = db.ListLessonsBetween(ctx, h.DB, monthFrom, monthTo)
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range lessons {
		day := l.StartTime.UTC().Day()
		switch {
		case day == 22 || day == 29:
			if l.TeacherID != teacher2ID {
				t.Fatalf("урок %d января не перенял нового учителя", day)
			}
			if len(l.StudentIDs) != 2 {
				t.Fatalf("урок %d января не перенял новый состав: %v", day, l.StudentIDs)
			}
		default:
			if l.TeacherID != teacherID {
				t.Fatalf("исторический урок %d января изменён", day)
			}
		}
	}

	// Удаление предмета сносит уроки с сегодняшнего дня, история остаётся.
	if err := svc.DeleteSubject(ctx, now, subjectID); err != nil {
		t.Fatal(err)
	}
	lessons, err = db.ListLessonsBetween(ctx, h.DB, monthFrom, monthTo)
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) != 2 {
		t.Fatalf("ожидали 2 прошедших урока после удаления, получили %d", len(lessons))
	}
	for _, l := range lessons {
		if d := l.StartTime.UTC().Day(); d != 1 && d != 8 {
			t.Fatalf("после удаления остался урок %d января", d)
		}
	}
	subjects, err := svc.ListSubjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 0 {
		t.Fatalf("предмет не удалён: %v", subjects)
	}
}

// Повторная подача отчёта: отметки заменяются целиком записями новой карты,
// без слияния с прежними; фотографии — оставленные клиентом URL, затем новые
// загрузки, именно в этом порядке.
func TestRecordAttendance_ResubmitReplacesWholesale(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	up := &fakeUploader{}
	svc := newService(t, h, up)

	teacherID, err := svc.CreateTeacher(ctx, service.TeacherInput{FullName: "Иванова А.А.", Phone: "+79990000001", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	s1, err := svc.CreateStudent(ctx, service.StudentInput{FullName: "Ученик 1"})
	if err != nil {
		t.Fatal(err)
	}
	s2, err := svc.CreateStudent(ctx, service.StudentInput{FullName: "Ученик 2"})
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = svc.CreateSubject(ctx, service.CreateSubjectInput{
		Name:       "Химия",
		TeacherID:  teacherID,
		StudentIDs: []string{s1, s2},
		Schedule:   []models.ScheduleRule{{DayOfWeek: 3, StartTime: "11:00", EndTime: "12:00"}},
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	lessons, err := db.ListLessonsBetween(ctx, h.DB,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) != 1 {
		t.Fatalf("ожидали 1 урок, получили %d", len(lessons))
	}
	lessonID := lessons[0].ID

	now := time.Date(2024, 1, 3, 13, 0, 0, 0, time.UTC)
	err = svc.RecordAttendance(ctx, now, lessonID, service.RecordAttendanceInput{
		AttendanceMap: map[string]bool{s1: true, s2: false},
		NewPhotos:     []service.PhotoFile{photo("board.jpg", "jpeg-bytes")},
	})
	if err != nil {
		t.Fatal(err)
	}
	first, err := db.GetLessonByID(ctx, h.DB, lessonID)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Attendance) != 2 || len(first.Photos) != 1 {
		t.Fatalf("первый отчёт: %d отметок, %d фото", len(first.Attendance), len(first.Photos))
	}

	// Второй отчёт: одна запись в карте, прежнее фото оставлено, одно новое.
	now2 := now.Add(time.Hour)
	err = svc.RecordAttendance(ctx, now2, lessonID, service.RecordAttendanceInput{
		AttendanceMap:  map[string]bool{s2: true},
		ExistingPhotos: first.Photos,
		NewPhotos:      []service.PhotoFile{photo("desk.jpg", "jpeg-bytes")},
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.GetLessonByID(ctx, h.DB, lessonID)
	if err != nil {
		t.Fatal(err)
	}
	if second.Status != models.LessonCompleted {
		t.Fatalf("статус урока %s после повторного отчёта", second.Status)
	}
	// Ровно записи второй карты, без дописывания отметки s1 из первого отчёта.
	if len(second.Attendance) != 1 {
		t.Fatalf("ожидали 1 отметку после повторной подачи, получили %d: %v", len(second.Attendance), second.Attendance)
	}
	if second.Attendance[0].StudentID != s2 || !second.Attendance[0].Present {
		t.Fatalf("неожиданная отметка: %+v", second.Attendance[0])
	}
	// Оставленный URL, затем новая загрузка.
	wantPhotos := []string{"https://cdn.test/board.jpg", "https://cdn.test/desk.jpg"}
	if len(second.Photos) != len(wantPhotos) {
		t.Fatalf("ожидали %d фото, получили %v", len(wantPhotos), second.Photos)
	}
	for i := range wantPhotos {
		if second.Photos[i] != wantPhotos[i] {
			t.Fatalf("фото %d: %q, ожидали %q", i, second.Photos[i], wantPhotos[i])
		}
	}
	if second.ReportUpdatedAt == nil || !second.ReportUpdatedAt.After(*first.ReportUpdatedAt) {
		t.Fatalf("report_updated_at не сдвинулся: %v → %v", first.ReportUpdatedAt, second.ReportUpdatedAt)
	}
}

// Сбой загрузки фото отменяет отчёт целиком: статус и отметки не трогаются.
func TestRecordAttendance_UploadFailureAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	up := &fakeUploader{fail: true}
	svc := newService(t, h, up)

	teacherID, err := svc.CreateTeacher(ctx, service.TeacherInput{FullName: "Иванова А.А.", Phone: "+79990000001", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	studentID, err := svc.CreateStudent(ctx, service.StudentInput{FullName: "Ученик"})
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	_, _, err = svc.CreateSubject(ctx, service.CreateSubjectInput{
		Name:       "Физика",
		TeacherID:  teacherID,
		StudentIDs: []string{studentID},
		Schedule:   []models.ScheduleRule{{DayOfWeek: 5, StartTime: "10:00", EndTime: "11:00"}},
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	lessons, err := db.ListLessonsBetween(ctx, h.DB,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(lessons) == 0 {
		t.Fatal("уроки не сгенерированы")
	}

	err = svc.RecordAttendance(ctx, now, lessons[0].ID, service.RecordAttendanceInput{
		AttendanceMap: map[string]bool{studentID: true},
		NewPhotos:     []service.PhotoFile{photo("board.jpg", "jpeg-bytes")},
	})
	if !errors.Is(err, service.ErrUpload) {
		t.Fatalf("ожидали ErrUpload, получили %v", err)
	}

	lesson, err := db.GetLessonByID(ctx, h.DB, lessons[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if lesson.Status != models.LessonScheduled {
		t.Fatalf("урок изменён при сбое загрузки: статус %s", lesson.Status)
	}
	if len(lesson.Attendance) != 0 {
		t.Fatalf("отметки записаны при сбое загрузки: %v", lesson.Attendance)
	}
}

func TestLogin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	svc := newService(t, h, &fakeUploader{})

	teacherID, err := svc.CreateTeacher(ctx, service.TeacherInput{FullName: "Иванова А.А.", Phone: "+7 999 000 00 01", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	studentID, err := svc.CreateStudent(ctx, service.StudentInput{FullName: "Ученик"})
	if err != nil {
		t.Fatal(err)
	}
	parentID, err := svc.CreateParent(ctx, service.ParentInput{
		FullName: "Сидорова В.В.", Phone: "+79990000002", Password: "ppw", StudentIDs: []string{studentID},
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.Login(ctx, "admin", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if res.Role != models.Admin || res.Redirect != "/admin" {
		t.Fatalf("неожиданный результат входа администратора: %+v", res)
	}

	// Телефон с пробелами нормализуется при входе.
	res, err = svc.Login(ctx, "+7 999 000 00 01", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if res.Role != models.Teacher || res.UserID != teacherID {
		t.Fatalf("неожиданный результат входа учителя: %+v", res)
	}

	res, err = svc.Login(ctx, "+79990000002", "ppw")
	if err != nil {
		t.Fatal(err)
	}
	if res.Role != models.Parent || res.UserID != parentID {
		t.Fatalf("неожиданный результат входа родителя: %+v", res)
	}

	if _, err := svc.Login(ctx, "admin", "wrong"); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("ожидали ErrValidation на неверный пароль, получили %v", err)
	}
}
