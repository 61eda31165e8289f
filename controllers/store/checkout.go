package storeController

import (
	"log"
	"math"
	"time"

	"flms/database"
	"flms/middleware"
	"flms/models"
	courseModels "flms/models/course"
	studentModels "flms/models/student"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gateway calls go through these seams so tests can stub the external API.
var (
	createGatewayOrder     = utils.CreateRazorpayOrder
	verifyGatewaySignature = utils.VerifyRazorpaySignature
)

// grantCourse records ownership once; repeated grants are no-ops.
func grantCourse(tx *gorm.DB, userID, courseID uint) error {
	var existing studentModels.PurchasedCourse
	if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return nil
	}
	return tx.Create(&studentModels.PurchasedCourse{UserID: userID, CourseID: courseID}).Error
}

// removeFromCartTx clears purchased courses out of the user's cart. A
// missing cart is fine; a failed delete is not, it must roll the caller's
// transaction back.
func removeFromCartTx(tx *gorm.DB, userID uint, courseIDs []uint) error {
	var cart studentModels.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil
	}
	return tx.Unscoped().
		Where("cart_id = ? AND course_id IN ?", cart.ID, courseIDs).
		Delete(&studentModels.CartItem{}).Error
}

func sendPurchaseEmailAsync(userID uint, courses []courseModels.Course) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return
	}

	names := make([]string, 0, len(courses))
	for _, course := range courses {
		names = append(names, course.Name)
	}

	go func() {
		if err := utils.SendPurchaseEmail(user.Email, user.FullName, names); err != nil {
			log.Printf("Error sending purchase email: %v", err)
		}
	}()
}

// CreateOrder resolves the target course set, grants free courses on the
// spot, and opens a gateway order for the paid remainder. For cart checkout
// the requested ids are intersected with the cart; a direct buy takes the
// list as given. Already-owned courses are silently dropped.
func CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedOrder").(*struct {
		DirectBuy bool   `json:"direct_buy"`
		CourseIDs []uint `json:"course_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	requested := reqData.CourseIDs
	if !reqData.DirectBuy {
		var cart studentModels.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Your cart is empty!", nil)
		}
		var items []studentModels.CartItem
		db.Where("cart_id = ? AND course_id IN ?", cart.ID, requested).Find(&items)
		if len(items) == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "None of these courses are in your cart!", nil)
		}
		requested = requested[:0]
		for _, item := range items {
			requested = append(requested, item.CourseID)
		}
	}

	var freeCourses, paidCourses []courseModels.Course
	var amountPaise int64
	for _, courseID := range requested {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}

		// Owned courses drop out of the basket without failing the order.
		var owned int64
		db.Model(&studentModels.PurchasedCourse{}).
			Where("user_id = ? AND course_id = ?", userID, courseID).Count(&owned)
		if owned > 0 {
			continue
		}

		if price := course.EffectivePrice(); price == 0 {
			freeCourses = append(freeCourses, course)
		} else {
			paidCourses = append(paidCourses, course)
			// Round so two-decimal prices land on their exact paise value.
			amountPaise += int64(math.Round(price * 100))
		}
	}

	if len(freeCourses)+len(paidCourses) == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already own these courses!", nil)
	}

	// Free courses never reach the gateway: grant them right away.
	if len(freeCourses) > 0 {
		tx := db.Begin()
		freeIDs := make([]uint, 0, len(freeCourses))
		for _, course := range freeCourses {
			if err := grantCourse(tx, userID, course.ID); err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
			}
			freeIDs = append(freeIDs, course.ID)
		}
		if !reqData.DirectBuy {
			if err := removeFromCartTx(tx, userID, freeIDs); err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
			}
		}
		if err := tx.Commit().Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
		sendPurchaseEmailAsync(userID, freeCourses)
	}

	if amountPaise == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Free course enrolled successfully!", fiber.Map{
			"free": true,
		})
	}

	gatewayOrderID, err := createGatewayOrder(amountPaise, "INR", "rcpt_"+uuid.NewString())
	if err != nil {
		log.Printf("Error creating gateway order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment gateway is unavailable, try again!", nil)
	}

	order := studentModels.Order{
		UserID:         userID,
		GatewayOrderID: gatewayOrderID,
		AmountPaise:    amountPaise,
		DirectBuy:      reqData.DirectBuy,
	}

	tx := db.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating order: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
	}
	for _, course := range paidCourses {
		item := studentModels.OrderItem{OrderID: order.ID, CourseID: course.ID}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order created successfully!", fiber.Map{
		"order_id":     order.GatewayOrderID,
		"amount_paise": amountPaise,
		"currency":     "INR",
	})
}

// VerifyPayment settles an order after the client completes gateway
// checkout. The signature is checked before any database state is read, a
// paid order is never settled twice, and ownership grants plus cart cleanup
// commit atomically with the paid flag.
func VerifyPayment(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedVerify").(*struct {
		OrderID   string `json:"order_id"`
		PaymentID string `json:"payment_id"`
		Signature string `json:"signature"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !verifyGatewaySignature(reqData.OrderID, reqData.PaymentID, reqData.Signature) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment signature verification failed!", nil)
	}

	db := database.Database.Db

	var order studentModels.Order
	if err := db.Where("gateway_order_id = ? AND user_id = ?", reqData.OrderID, userID).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if order.IsPaid {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Order is already paid!", nil)
	}

	var items []studentModels.OrderItem
	db.Where("order_id = ?", order.ID).Find(&items)

	courseIDs := make([]uint, 0, len(items))
	var courses []courseModels.Course
	for _, item := range items {
		courseIDs = append(courseIDs, item.CourseID)
		var course courseModels.Course
		if err := db.Where("id = ?", item.CourseID).First(&course).Error; err == nil {
			courses = append(courses, course)
		}
	}

	tx := db.Begin()

	if err := tx.Model(&studentModels.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"is_paid":           true,
		"payment_id":        reqData.PaymentID,
		"payment_signature": reqData.Signature,
	}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
	}

	payment := studentModels.Payment{
		OrderID:          order.ID,
		GatewayPaymentID: reqData.PaymentID,
		GatewaySignature: reqData.Signature,
		PaidAt:           time.Now(),
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
	}

	for _, courseID := range courseIDs {
		if err := grantCourse(tx, userID, courseID); err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
		}
	}

	if !order.DirectBuy {
		if err := removeFromCartTx(tx, userID, courseIDs); err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify payment!", nil)
	}

	sendPurchaseEmailAsync(userID, courses)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment verified, courses unlocked!", fiber.Map{
		"order_id":   order.GatewayOrderID,
		"course_ids": courseIDs,
	})
}
