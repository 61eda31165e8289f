package storeController

import (
	"log"

	"flms/database"
	"flms/middleware"
	courseModels "flms/models/course"
	studentModels "flms/models/student"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// getOrCreateCart returns the user's single cart, creating it on first use.
func getOrCreateCart(db *gorm.DB, userID uint) (*studentModels.Cart, error) {
	var cart studentModels.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	cart = studentModels.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func AddToCart(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("validatedCourseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var owned int64
	db.Model(&studentModels.PurchasedCourse{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).Count(&owned)
	if owned > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already own this course!", nil)
	}

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		log.Printf("Error creating cart: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add to cart!", nil)
	}

	var existing studentModels.CartItem
	if err := db.Where("cart_id = ? AND course_id = ?", cart.ID, courseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course is already in your cart!", nil)
	}

	item := studentModels.CartItem{CartID: cart.ID, CourseID: courseID}
	if err := db.Create(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add to cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course added to cart!", nil)
}

func RemoveFromCart(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("validatedCourseID").(uint)

	db := database.Database.Db

	var cart studentModels.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Cart is empty!", nil)
	}

	result := db.Unscoped().
		Where("cart_id = ? AND course_id = ?", cart.ID, courseID).
		Delete(&studentModels.CartItem{})
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course is not in your cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from cart!", nil)
}

func GetCart(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var cart studentModels.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched!", fiber.Map{
			"items": []fiber.Map{},
			"total": 0.0,
		})
	}

	var items []studentModels.CartItem
	db.Where("cart_id = ?", cart.ID).Find(&items)

	var total float64
	list := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", item.CourseID, false).First(&course).Error; err != nil {
			continue
		}
		price := course.EffectivePrice()
		total += price
		list = append(list, fiber.Map{
			"course_id":   course.ID,
			"name":        course.Name,
			"author_name": course.AuthorName,
			"thumbnail":   utils.GetFileURL(course.ThumbnailPath),
			"price_inr":   course.PriceINR,
			"offer_price": course.OfferPrice,
			"price":       price,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched!", fiber.Map{
		"items": list,
		"total": total,
	})
}
