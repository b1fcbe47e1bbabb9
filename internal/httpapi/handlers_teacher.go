package httpapi

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"time"

	"github.com/Spok95/school-attendance/internal/service"
	"github.com/gofiber/fiber/v2"
)

func (a *API) handleTeacherProfile(c *fiber.Ctx) error {
	teacher, err := a.svc.GetTeacher(c.UserContext(), sessionFrom(c).UserID)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"teacher": toTeacherJSON(*teacher), "error": false})
}

func (a *API) handleTeacherLessons(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	lessons, err := a.svc.LessonsForTeacherWeek(c.UserContext(), sess.UserID, queryDate(c, "date"))
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"lessons": toLessonsJSON(lessons), "error": false})
}

// handleAttendanceReport принимает multipart-форму отчёта:
//
//	attendanceMap  — JSON-объект {studentId: bool}, единственное значение;
//	existingPhotos — JSON-массив URL прежних фото (необязательно);
//	photos         — файловые части с новыми фотографиями.
func (a *API) handleAttendanceReport(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Ожидается multipart-форма", "error": true})
	}

	raw := formValue(form, "attendanceMap")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Карта посещаемости отсутствует", "error": true})
	}
	var attendanceMap map[string]bool
	if err := json.Unmarshal([]byte(raw), &attendanceMap); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Некорректная карта посещаемости", "error": true})
	}

	var existing []string
	if raw := formValue(form, "existingPhotos"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Некорректный список фотографий", "error": true})
		}
	}

	photos := make([]service.PhotoFile, 0, len(form.File["photos"]))
	for _, fh := range form.File["photos"] {
		fh := fh
		photos = append(photos, service.PhotoFile{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	err = a.svc.RecordAttendance(c.UserContext(), time.Now().UTC(), c.Params("id"), service.RecordAttendanceInput{
		AttendanceMap:  attendanceMap,
		ExistingPhotos: existing,
		NewPhotos:      photos,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Отчёт сохранён")
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
