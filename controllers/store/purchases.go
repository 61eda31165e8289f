package storeController

import (
	"flms/database"
	"flms/middleware"
	courseModels "flms/models/course"
	studentModels "flms/models/student"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
)

func MyPurchases(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var purchases []studentModels.PurchasedCourse
	if err := db.Where("user_id = ?", userID).Order("id desc").Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	list := make([]fiber.Map, 0, len(purchases))
	for _, purchase := range purchases {
		var course courseModels.Course
		if err := db.Where("id = ?", purchase.CourseID).First(&course).Error; err != nil {
			continue
		}
		list = append(list, fiber.Map{
			"course_id":    course.ID,
			"name":         course.Name,
			"author_name":  course.AuthorName,
			"thumbnail":    utils.GetFileURL(course.ThumbnailPath),
			"purchased_at": purchase.CreatedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchases fetched!", list)
}

func MyOrders(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var orders []studentModels.Order
	if err := db.Where("user_id = ?", userID).Order("id desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	list := make([]fiber.Map, 0, len(orders))
	for _, order := range orders {
		var items []studentModels.OrderItem
		db.Where("order_id = ?", order.ID).Find(&items)

		courseIDs := make([]uint, 0, len(items))
		for _, item := range items {
			courseIDs = append(courseIDs, item.CourseID)
		}

		list = append(list, fiber.Map{
			"order_id":     order.GatewayOrderID,
			"amount_paise": order.AmountPaise,
			"is_paid":      order.IsPaid,
			"direct_buy":   order.DirectBuy,
			"course_ids":   courseIDs,
			"created_at":   order.CreatedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched!", list)
}
