package courseValidator

import (
	"strconv"
	"strings"

	"flms/middleware"

	"github.com/gofiber/fiber/v2"
)

// paramID validates a positive integer route parameter and stores it under
// the given locals key.
func paramID(param, localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(localsKey, uint(id))
		return c.Next()
	}
}

func CourseID() fiber.Handler   { return paramID("id", "courseID") }
func ModuleID() fiber.Handler   { return paramID("module_id", "moduleID") }
func ChapterID() fiber.Handler  { return paramID("chapter_id", "chapterID") }
func QuizID() fiber.Handler     { return paramID("quiz_id", "quizID") }
func MockTestID() fiber.Handler { return paramID("mock_test_id", "mockTestID") }

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name             string   `json:"name"`
			Description      string   `json:"description"`
			Category         string   `json:"category"`
			AuthorName       string   `json:"author_name"`
			PriceINR         float64  `json:"price_inr"`
			OfferPrice       *float64 `json:"offer_price"`
			WhatYouWillLearn []string `json:"what_you_will_learn"`
			Position         int      `json:"position"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}
		if reqData.PriceINR < 0 {
			errors["price_inr"] = "Price cannot be negative!"
		}
		if reqData.OfferPrice != nil && *reqData.OfferPrice < 0 {
			errors["offer_price"] = "Offer price cannot be negative!"
		}
		for _, point := range reqData.WhatYouWillLearn {
			if strings.TrimSpace(point) == "" {
				errors["what_you_will_learn"] = "Bullet points cannot be empty!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name             string   `json:"name"`
			Description      string   `json:"description"`
			Category         string   `json:"category"`
			AuthorName       string   `json:"author_name"`
			PriceINR         *float64 `json:"price_inr"`
			OfferPrice       *float64 `json:"offer_price"`
			WhatYouWillLearn []string `json:"what_you_will_learn"`
			Position         *int     `json:"position"`
			Recommended      *bool    `json:"recommended"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.PriceINR != nil && *reqData.PriceINR < 0 {
			errors["price_inr"] = "Price cannot be negative!"
		}
		if reqData.OfferPrice != nil && *reqData.OfferPrice < 0 {
			errors["offer_price"] = "Offer price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Defaults applied in the handler; reject only nonsense values
		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
