package userValidator

import (
	"regexp"
	"strings"

	"flms/middleware"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName    string `json:"full_name"`
			Institution string `json:"institution"`
			Location    string `json:"location"`
			DOB         string `json:"dob"` // YYYY-MM-DD
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.FullName != "" && len(strings.TrimSpace(reqData.FullName)) < 2 {
			return middleware.ValidationErrorResponse(c, map[string]string{"full_name": "Full name must be at least 2 characters long!"})
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

func NewsletterSubscribe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !emailRegex.MatchString(reqData.Email) {
			return middleware.ValidationErrorResponse(c, map[string]string{"email": "A valid email is required!"})
		}

		c.Locals("validatedEmail", reqData.Email)
		return c.Next()
	}
}
