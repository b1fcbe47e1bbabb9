package httpapi

import (
	"strings"

	"github.com/Spok95/school-attendance/internal/ctxutil"
	"github.com/Spok95/school-attendance/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	cookieRole = "auth_role"
	cookieID   = "auth_id"
)

// requireRole пускает дальше только совпадающую роль из cookie-пары и кладёт
// явный сеансовый контекст в контекст запроса — дальше по коду cookie не читаем.
func (a *API) requireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := models.Role(c.Cookies(cookieRole))
		if got != role {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Требуется вход",
				"error":   true,
			})
		}
		sess := ctxutil.Session{Role: got, UserID: c.Cookies(cookieID)}
		if role != models.Admin && sess.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Требуется вход",
				"error":   true,
			})
		}
		c.SetUserContext(ctxutil.WithSession(c.UserContext(), sess))
		return c.Next()
	}
}

func sessionFrom(c *fiber.Ctx) ctxutil.Session {
	s, _ := ctxutil.SessionFrom(c.UserContext())
	return s
}

// userMessage срезает служебный префикс класса ошибки ("validation: …").
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
