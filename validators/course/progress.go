package courseValidator

import (
	"flms/middleware"

	"github.com/gofiber/fiber/v2"
)

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ChapterID *uint `json:"chapter_id"`
			QuizID    *uint `json:"quiz_id"`
			Completed *bool `json:"completed"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ChapterID == nil && reqData.QuizID == nil {
			errors["chapter_id"] = "Either chapter_id or quiz_id is required!"
		}
		if reqData.ChapterID != nil && *reqData.ChapterID == 0 {
			errors["chapter_id"] = "Invalid chapter ID!"
		}
		if reqData.QuizID != nil && *reqData.QuizID == 0 {
			errors["quiz_id"] = "Invalid quiz ID!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

func SubmitQuizAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SelectedOption int `json:"selected_option"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.SelectedOption < 1 || reqData.SelectedOption > 4 {
			return middleware.ValidationErrorResponse(c, map[string]string{"selected_option": "Selected option must be between 1 and 4!"})
		}

		c.Locals("validatedSelectedOption", reqData.SelectedOption)
		return c.Next()
	}
}
