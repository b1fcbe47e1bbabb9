package httpapi

import (
	"errors"
	"time"

	"github.com/Spok95/school-attendance/internal/metrics"
	"github.com/Spok95/school-attendance/internal/models"
	"github.com/Spok95/school-attendance/internal/observability"
	"github.com/Spok95/school-attendance/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type API struct {
	svc      *service.Service
	log      *zap.Logger
	validate *validator.Validate
}

func New(svc *service.Service, log *zap.Logger) *fiber.App {
	api := &API{
		svc:      svc,
		log:      log,
		validate: validator.New(),
	}

	app := fiber.New(fiber.Config{
		AppName:   "school-attendance",
		BodyLimit: 25 * 1024 * 1024, // фотоотчёты
	})
	app.Use(recover.New())

	app.Post("/login", loginLimiter(), api.handleLogin)
	app.Post("/logout", api.handleLogout)

	admin := app.Group("/admin", api.requireRole(models.Admin))
	admin.Get("/teachers", api.handleListTeachers)
	admin.Post("/teachers", api.handleCreateTeacher)
	admin.Put("/teachers/:id", api.handleUpdateTeacher)
	admin.Delete("/teachers/:id", api.handleDeleteTeacher)

	admin.Get("/students", api.handleListStudents)
	admin.Post("/students", api.handleCreateStudent)
	admin.Put("/students/:id", api.handleUpdateStudent)
	admin.Delete("/students/:id", api.handleDeleteStudent)

	admin.Get("/parents", api.handleListParents)
	admin.Post("/parents", api.handleCreateParent)
	admin.Put("/parents/:id", api.handleUpdateParent)
	admin.Delete("/parents/:id", api.handleDeleteParent)

	admin.Get("/subjects", api.handleListSubjects)
	admin.Get("/subjects/:id", api.handleGetSubject)
	admin.Post("/subjects", api.handleCreateSubject)
	admin.Put("/subjects/:id", api.handleUpdateSubject)
	admin.Delete("/subjects/:id", api.handleDeleteSubject)

	admin.Get("/calendar", api.handleAdminCalendar)
	admin.Get("/export/attendance", api.handleExportAttendance)

	teacher := app.Group("/teacher", api.requireRole(models.Teacher))
	teacher.Get("/me", api.handleTeacherProfile)
	teacher.Get("/lessons", api.handleTeacherLessons)
	teacher.Post("/lessons/:id/report", api.handleAttendanceReport)

	parent := app.Group("/parent", api.requireRole(models.Parent))
	parent.Get("/lessons", api.handleParentLessons)

	return app
}

// loginLimiter — грубый тормоз перебора паролей по IP.
func loginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Слишком много попыток входа, попробуйте позже",
				"error":   true,
			})
		},
	})
}

// ok — единый успешный ответ операции.
func ok(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"message": message, "error": false})
}

// fail гасит ошибку на границе операции: классифицирует её, логирует и
// превращает в единый ответ {message, error: true}. Процесс не падает.
func (a *API) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": userMessage(err), "error": true})
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": userMessage(err), "error": true})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": userMessage(err), "error": true})
	case errors.Is(err, service.ErrUpload):
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		a.log.Error("сбой загрузки изображений", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Не удалось загрузить фотографии", "error": true})
	default:
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		a.log.Error("ошибка операции", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Внутренняя ошибка, попробуйте позже", "error": true})
	}
}
