package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (a *API) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Некорректный запрос", "error": true})
	}
	if err := a.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Логин и пароль обязательны", "error": true})
	}

	res, err := a.svc.Login(c.UserContext(), req.Login, req.Password)
	if err != nil {
		return a.fail(c, err)
	}

	setAuthCookie(c, cookieRole, string(res.Role))
	if res.UserID != "" {
		setAuthCookie(c, cookieID, res.UserID)
	}
	return c.JSON(fiber.Map{"message": "Success", "error": false, "redirectUrl": res.Redirect})
}

func (a *API) handleLogout(c *fiber.Ctx) error {
	clearAuthCookie(c, cookieRole)
	clearAuthCookie(c, cookieID)
	return ok(c, "Вы вышли из системы")
}

func setAuthCookie(c *fiber.Ctx, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearAuthCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Unix(0, 0),
	})
}
