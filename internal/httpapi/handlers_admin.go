package httpapi

import (
	"time"

	"github.com/Spok95/school-attendance/internal/models"
	"github.com/Spok95/school-attendance/internal/service"
	"github.com/gofiber/fiber/v2"
)

// --- учителя ---

func (a *API) handleListTeachers(c *fiber.Ctx) error {
	teachers, err := a.svc.ListTeachers(c.UserContext())
	if err != nil {
		return a.fail(c, err)
	}
	out := make([]teacherJSON, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, toTeacherJSON(t))
	}
	return c.JSON(fiber.Map{"teachers": out, "error": false})
}

func (a *API) handleCreateTeacher(c *fiber.Ctx) error {
	var req service.TeacherInput
	if !a.parse(c, &req) {
		return nil
	}
	id, err := a.svc.CreateTeacher(c.UserContext(), req)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Учитель создан", "error": false, "id": id})
}

func (a *API) handleUpdateTeacher(c *fiber.Ctx) error {
	var req service.TeacherInput
	if !a.parse(c, &req) {
		return nil
	}
	if err := a.svc.UpdateTeacher(c.UserContext(), c.Params("id"), req); err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Учитель обновлён")
}

func (a *API) handleDeleteTeacher(c *fiber.Ctx) error {
	if err := a.svc.DeleteTeacher(c.UserContext(), c.Params("id")); err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Учитель удалён")
}

// --- ученики ---

func (a *API) handleListStudents(c *fiber.Ctx) error {
	students, err := a.svc.ListStudents(c.UserContext())
	if err != nil {
		return a.fail(c, err)
	}
	out := make([]studentJSON, 0, len(students))
	for _, s := range students {
		out = append(out, toStudentJSON(s))
	}
	return c.JSON(fiber.Map{"students": out, "error": false})
}

func (a *API) handleCreateStudent(c *fiber.Ctx) error {
	var req service.StudentInput
	if !a.parse(c, &req) {
		return nil
	}
	id, err := a.svc.CreateStudent(c.UserContext(), req)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Ученик создан", "error": false, "id": id})
}

func (a *API) handleUpdateStudent(c *fiber.Ctx) error {
	var req service.StudentInput
	if !a.parse(c, &req) {
		return nil
	}
	if err := a.svc.UpdateStudent(c.UserContext(), c.Params("id"), req); err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Ученик обновлён")
}

func (a *API) handleDeleteStudent(c *fiber.Ctx) error {
	if err := a.svc.DeleteStudent(c.UserContext(), c.Params("id")); err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Ученик удалён")
}

// --- родители ---

func (a *API) handleListParents(c *fiber.Ctx) error {
	parents, err := a.svc.ListParents(c.UserContext())
	if err != nil {
		return a.fail(c, err)
	}
	out := make([]parentJSON, 0, len(parents))
	for _, p := range parents {
		out = append(out, toParentJSON(p))
	}
	return c.JSON(fiber.Map{"parents": out, "error": false})
}

func (a *API) handleCreateParent(c *fiber.Ctx) error {
	var req service.ParentInput
	if !a.parse(c, &req) {
		return nil
	}
	id, err := a.svc.CreateParent(c.UserContext(), req)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Родитель создан", "error": false, "id": id})
}

func (a *API) handleUpdateParent(c *fiber.Ctx) error {
	var req service.ParentInput
	if !a.parse(c, &req) {
		return nil
	}
	if err := a.svc.UpdateParent(c.UserContext(), c.Params("id"), req); err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Родитель обновлён")
}

func (a *API) handleDeleteParent(c *fiber.Ctx) error {
	if err := a.svc.DeleteParent(c.UserContext(), c.Params("id")); err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Родитель удалён")
}

// --- предметы ---

type createSubjectRequest struct {
	Name       string                `json:"name" validate:"required"`
	TeacherID  string                `json:"teacherId" validate:"required,len=24,hexadecimal"`
	StudentIDs []string              `json:"studentIds" validate:"required,min=1,dive,len=24,hexadecimal"`
	Schedule   []models.ScheduleRule `json:"schedule" validate:"required,min=1"`
	StartDate  string                `json:"startDate" validate:"required"`
	EndDate    string                `json:"endDate" validate:"required"`
}

func (a *API) handleListSubjects(c *fiber.Ctx) error {
	subjects, err := a.svc.ListSubjects(c.UserContext())
	if err != nil {
		return a.fail(c, err)
	}
	out := make([]subjectJSON, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, toSubjectJSON(s))
	}
	return c.JSON(fiber.Map{"subjects": out, "error": false})
}

func (a *API) handleGetSubject(c *fiber.Ctx) error {
	subject, err := a.svc.GetSubject(c.UserContext(), c.Params("id"))
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"subject": toSubjectJSON(*subject), "error": false})
}

func (a *API) handleCreateSubject(c *fiber.Ctx) error {
	var req createSubjectRequest
	if !a.parse(c, &req) {
		return nil
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Некорректная дата начала", "error": true})
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Некорректная дата окончания", "error": true})
	}

	id, n, err := a.svc.CreateSubject(c.UserContext(), service.CreateSubjectInput{
		Name:       req.Name,
		TeacherID:  req.TeacherID,
		StudentIDs: req.StudentIDs,
		Schedule:   req.Schedule,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Предмет и расписание созданы", "error": false, "id": id, "lessons": n})
}

func (a *API) handleUpdateSubject(c *fiber.Ctx) error {
	var req service.UpdateSubjectInput
	if !a.parse(c, &req) {
		return nil
	}
	if err := a.svc.UpdateSubject(c.UserContext(), time.Now().UTC(), c.Params("id"), req); err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Предмет обновлён")
}

func (a *API) handleDeleteSubject(c *fiber.Ctx) error {
	if err := a.svc.DeleteSubject(c.UserContext(), time.Now().UTC(), c.Params("id")); err != nil {
		return a.fail(c, err)
	}
	return ok(c, "Предмет удалён")
}

// --- календарь и экспорт ---

func (a *API) handleAdminCalendar(c *fiber.Ctx) error {
	date := queryDate(c, "date")
	lessons, err := a.svc.LessonsForWeek(c.UserContext(), date)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"lessons": toLessonsJSON(lessons), "error": false})
}

func (a *API) handleExportAttendance(c *fiber.Ctx) error {
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Некорректная дата from", "error": true})
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Некорректная дата to", "error": true})
	}

	f, filename, err := a.svc.ExportAttendance(c.UserContext(), from, to)
	if err != nil {
		return a.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return f.Write(c.Response().BodyWriter())
}

// parse — BodyParser + validator; на ошибке сам пишет ответ и возвращает false.
func (a *API) parse(c *fiber.Ctx, dst any) bool {
	if err := c.BodyParser(dst); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Некорректный запрос", "error": true})
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Заполните все обязательные поля", "error": true})
		return false
	}
	return true
}

// queryDate — дата из query или сегодня.
func queryDate(c *fiber.Ctx, key string) time.Time {
	if v := c.Query(key); v != "" {
		if d, err := time.Parse(dateLayout, v); err == nil {
			return d
		}
	}
	return time.Now().UTC()
}
