package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (a *API) handleParentLessons(c *fiber.Ctx) error {
	sess := sessionFrom(c)
	week, err := a.svc.LessonsForParentWeek(c.UserContext(), sess.UserID, queryDate(c, "date"))
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"lessons":    toLessonsJSON(week.Lessons),
		"studentIds": week.MyStudentIDs,
		"error":      false,
	})
}
