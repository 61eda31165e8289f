package storeValidator

import (
	"strconv"
	"strings"

	"flms/middleware"

	"github.com/gofiber/fiber/v2"
)

func AddToCart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"course_id": "Course ID is required!"})
		}

		c.Locals("validatedCourseID", reqData.CourseID)
		return c.Next()
	}
}

func CartCourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("course_id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("validatedCourseID", uint(id))
		return c.Next()
	}
}

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DirectBuy bool   `json:"direct_buy"`
			CourseIDs []uint `json:"course_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.CourseIDs) == 0 {
			errors["course_ids"] = "At least one course ID is required!"
		}
		for _, id := range reqData.CourseIDs {
			if id == 0 {
				errors["course_ids"] = "Course IDs must be positive!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOrder", reqData)
		return c.Next()
	}
}

func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OrderID   string `json:"order_id"`
			PaymentID string `json:"payment_id"`
			Signature string `json:"signature"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.OrderID) == "" {
			errors["order_id"] = "Order ID is required!"
		}
		if strings.TrimSpace(reqData.PaymentID) == "" {
			errors["payment_id"] = "Payment ID is required!"
		}
		if strings.TrimSpace(reqData.Signature) == "" {
			errors["signature"] = "Signature is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}
