package courseValidator

import (
	"strings"

	"flms/middleware"

	"github.com/gofiber/fiber/v2"
)

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleName string `json:"module_name"`
			Position   int    `json:"position"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.ModuleName) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"module_name": "Module name is required!"})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// CreateChapter validates the multipart form fields of a chapter upload. The
// video file itself is checked in the handler.
func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		chapterName := strings.TrimSpace(c.FormValue("chapter_name"))
		if chapterName == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"chapter_name": "Chapter name is required!"})
		}

		c.Locals("validatedChapterName", chapterName)
		c.Locals("validatedChapterDescription", strings.TrimSpace(c.FormValue("chapter_description")))
		return c.Next()
	}
}

func quizErrors(question, option1, option2, option3, option4 string, correctOption int) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(question) == "" {
		errors["question"] = "Question is required!"
	}
	for _, opt := range []string{option1, option2, option3, option4} {
		if strings.TrimSpace(opt) == "" {
			errors["options"] = "All 4 options are required!"
			break
		}
	}
	if correctOption < 1 || correctOption > 4 {
		errors["correct_option"] = "Correct option must be between 1 and 4!"
	}

	return errors
}

func CreateQuiz() fiber.Handler {
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

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
