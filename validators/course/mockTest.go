package courseValidator

import (
	"strings"

	"flms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateMockTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Heading         string `json:"heading"`
			Description     string `json:"description"`
			DurationMinutes int    `json:"duration_minutes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Heading) == "" {
			errors["heading"] = "Heading is required!"
		}
		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMockTest", reqData)
		return c.Next()
	}
}

func CreateMockTestQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question      string `json:"question"`
			Option1       string `json:"option_1"`
			Option2       string `json:"option_2"`
			Option3       string `json:"option_3"`
			Option4       string `json:"option_4"`
			CorrectOption int    `json:"correct_option"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := quizErrors(reqData.Question, reqData.Option1, reqData.Option2, reqData.Option3, reqData.Option4, reqData.CorrectOption); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMockTestQuestion", reqData)
		return c.Next()
	}
}

// SubmitMockTest parses a mock-test submission. Set-equality against the
// question bank and the time-limit check happen in the handler; this layer
// only rejects structurally broken payloads.
func SubmitMockTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers []struct {
				QuizID         uint `json:"quiz_id"`
				SelectedOption int  `json:"selected_option"`
			} `json:"answers"`
			StartTime string `json:"start_time"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers must be a list!", nil)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}
