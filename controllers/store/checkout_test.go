package storeController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"flms/config"
	"flms/database"
	"flms/middleware"
	"flms/models"
	courseModels "flms/models/course"
	studentModels "flms/models/student"
	storeValidators "flms/validators/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStoreTest(t *testing.T) (*fiber.App, *gorm.DB) {
	config.AppConfig = &config.Config{
		JWTKey:         "test-key",
		SaltRound:      4,
		RazorpaySecret: "test-secret",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()

	orderGroup := app.Group("/order", middleware.JWTMiddleware)
	orderGroup.Post("/create", storeValidators.CreateOrder(), CreateOrder)
	orderGroup.Post("/verify", storeValidators.VerifyPayment(), VerifyPayment)

	cartGroup := app.Group("/cart", middleware.JWTMiddleware)
	cartGroup.Post("/add", storeValidators.AddToCart(), AddToCart)

	return app, db
}

func createStudent(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	user := models.User{FullName: "Test Student", Email: email, Password: "x", Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email, user.Mobile)
	require.NoError(t, err)
	return user, token
}

func jsonRequest(method, target, token string, body interface{}) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestCreateOrderFreeCourseGrantsImmediately(t *testing.T) {
	app, db := setupStoreTest(t)
	user, token := createStudent(t, db, "free@test.com")

	course := courseModels.Course{Name: "Free Intro", PriceINR: 0}
	require.NoError(t, db.Create(&course).Error)

	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"direct_buy": true,
		"course_ids": []uint{course.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var owned int64
	db.Model(&studentModels.PurchasedCourse{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&owned)
	assert.Equal(t, int64(1), owned)

	// A free grant never opens a gateway order.
	var orders int64
	db.Model(&studentModels.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestCreateOrderOfferPriceZeroIsFree(t *testing.T) {
	app, db := setupStoreTest(t)
	user, token := createStudent(t, db, "offer@test.com")

	zero := 0.0
	course := courseModels.Course{Name: "Discounted", PriceINR: 499, OfferPrice: &zero}
	require.NoError(t, db.Create(&course).Error)

	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"direct_buy": true,
		"course_ids": []uint{course.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var owned int64
	db.Model(&studentModels.PurchasedCourse{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&owned)
	assert.Equal(t, int64(1), owned)
}

func TestCreateOrderPaidCourse(t *testing.T) {
	app, db := setupStoreTest(t)
	_, token := createStudent(t, db, "paid@test.com")

	course := courseModels.Course{Name: "Robotics Pro", PriceINR: 1499.50}
	require.NoError(t, db.Create(&course).Error)

	orig := createGatewayOrder
	defer func() { createGatewayOrder = orig }()
	var gotAmount int64
	createGatewayOrder = func(amountPaise int64, currency, receipt string) (string, error) {
		gotAmount = amountPaise
		return "order_test_1", nil
	}

	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"direct_buy": true,
		"course_ids": []uint{course.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(149950), gotAmount)

	var order studentModels.Order
	require.NoError(t, db.Where("gateway_order_id = ?", "order_test_1").First(&order).Error)
	assert.False(t, order.IsPaid)
	assert.True(t, order.DirectBuy)
	assert.Equal(t, int64(149950), order.AmountPaise)

	var items int64
	db.Model(&studentModels.OrderItem{}).Where("order_id = ?", order.ID).Count(&items)
	assert.Equal(t, int64(1), items)

	// No ownership before payment is verified.
	var owned int64
	db.Model(&studentModels.PurchasedCourse{}).Count(&owned)
	assert.Zero(t, owned)
}

func TestCreateOrderPaiseConversionIsExact(t *testing.T) {
	app, db := setupStoreTest(t)
	_, token := createStudent(t, db, "paise@test.com")

	// 128.14 has no exact float64 form; truncation would yield 12813.
	course := courseModels.Course{Name: "Edge Price", PriceINR: 128.14}
	require.NoError(t, db.Create(&course).Error)

	orig := createGatewayOrder
	defer func() { createGatewayOrder = orig }()
	var gotAmount int64
	createGatewayOrder = func(amountPaise int64, currency, receipt string) (string, error) {
		gotAmount = amountPaise
		return "order_paise_1", nil
	}

	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"direct_buy": true,
		"course_ids": []uint{course.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(12814), gotAmount)

	var order studentModels.Order
	require.NoError(t, db.Where("gateway_order_id = ?", "order_paise_1").First(&order).Error)
	assert.Equal(t, int64(12814), order.AmountPaise)
}

func TestRemoveFromCartTxReportsDeleteFailure(t *testing.T) {
	_, db := setupStoreTest(t)
	user, _ := createStudent(t, db, "cartfail@test.com")

	cart := studentModels.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Migrator().DropTable(&studentModels.CartItem{}))

	err := removeFromCartTx(db, user.ID, []uint{1})
	assert.Error(t, err)
}

func TestCreateOrderAlreadyOwned(t *testing.T) {
	app, db := setupStoreTest(t)
	user, token := createStudent(t, db, "owner@test.com")

	course := courseModels.Course{Name: "Owned", PriceINR: 999}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&studentModels.PurchasedCourse{UserID: user.ID, CourseID: course.ID}).Error)

	// Owned courses drop out silently; an all-owned basket is a conflict.
	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"direct_buy": true,
		"course_ids": []uint{course.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCreateOrderUnknownCourse(t *testing.T) {
	app, _ := setupStoreTest(t)
	db := database.Database.Db
	_, token := createStudent(t, db, "ghost@test.com")

	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"direct_buy": true,
		"course_ids": []uint{404},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateOrderGatewayDown(t *testing.T) {
	app, db := setupStoreTest(t)
	_, token := createStudent(t, db, "down@test.com")

	course := courseModels.Course{Name: "Robotics Pro", PriceINR: 999}
	require.NoError(t, db.Create(&course).Error)

	orig := createGatewayOrder
	defer func() { createGatewayOrder = orig }()
	createGatewayOrder = func(amountPaise int64, currency, receipt string) (string, error) {
		return "", fmt.Errorf("connection refused")
	}

	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"direct_buy": true,
		"course_ids": []uint{course.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// Nothing persisted when the gateway call fails.
	var orders int64
	db.Model(&studentModels.Order{}).Count(&orders)
	assert.Zero(t, orders)
}

func TestCreateOrderCartCheckoutIntersectsCart(t *testing.T) {
	app, db := setupStoreTest(t)
	user, token := createStudent(t, db, "intersect@test.com")

	inCart := courseModels.Course{Name: "In Cart", PriceINR: 500}
	notInCart := courseModels.Course{Name: "Not In Cart", PriceINR: 700}
	require.NoError(t, db.Create(&inCart).Error)
	require.NoError(t, db.Create(&notInCart).Error)

	cart := studentModels.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&studentModels.CartItem{CartID: cart.ID, CourseID: inCart.ID}).Error)

	orig := createGatewayOrder
	defer func() { createGatewayOrder = orig }()
	var gotAmount int64
	createGatewayOrder = func(amountPaise int64, currency, receipt string) (string, error) {
		gotAmount = amountPaise
		return "order_cart_1", nil
	}

	// Only the carted course is priced into the order.
	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"course_ids": []uint{inCart.ID, notInCart.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(50000), gotAmount)

	var items int64
	db.Model(&studentModels.OrderItem{}).Count(&items)
	assert.Equal(t, int64(1), items)
}

func TestCreateOrderCartCheckoutNoMatchingItems(t *testing.T) {
	app, db := setupStoreTest(t)
	_, token := createStudent(t, db, "emptycart@test.com")

	course := courseModels.Course{Name: "Robotics Pro", PriceINR: 999}
	require.NoError(t, db.Create(&course).Error)

	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"course_ids": []uint{course.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateOrderMixedBasket(t *testing.T) {
	app, db := setupStoreTest(t)
	user, token := createStudent(t, db, "mixed@test.com")

	free := courseModels.Course{Name: "Free Intro", PriceINR: 0}
	paid := courseModels.Course{Name: "Robotics Pro", PriceINR: 999}
	require.NoError(t, db.Create(&free).Error)
	require.NoError(t, db.Create(&paid).Error)

	orig := createGatewayOrder
	defer func() { createGatewayOrder = orig }()
	createGatewayOrder = func(amountPaise int64, currency, receipt string) (string, error) {
		return "order_mixed_1", nil
	}

	resp, err := app.Test(jsonRequest("POST", "/order/create", token, fiber.Map{
		"direct_buy": true,
		"course_ids": []uint{free.ID, paid.ID},
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// The free course is granted up front; the paid one waits for payment.
	var owned int64
	db.Model(&studentModels.PurchasedCourse{}).
		Where("user_id = ? AND course_id = ?", user.ID, free.ID).Count(&owned)
	assert.Equal(t, int64(1), owned)

	db.Model(&studentModels.PurchasedCourse{}).
		Where("user_id = ? AND course_id = ?", user.ID, paid.ID).Count(&owned)
	assert.Zero(t, owned)

	var order studentModels.Order
	require.NoError(t, db.Where("gateway_order_id = ?", "order_mixed_1").First(&order).Error)
	assert.Equal(t, int64(99900), order.AmountPaise)
}

func seedPaidOrder(t *testing.T, db *gorm.DB, userID uint, courseIDs ...uint) studentModels.Order {
	order := studentModels.Order{
		UserID:         userID,
		GatewayOrderID: "order_seed_1",
		AmountPaise:    99900,
	}
	require.NoError(t, db.Create(&order).Error)
	for _, courseID := range courseIDs {
		require.NoError(t, db.Create(&studentModels.OrderItem{OrderID: order.ID, CourseID: courseID}).Error)
	}
	return order
}

func TestVerifyPaymentHappyPath(t *testing.T) {
	app, db := setupStoreTest(t)
	user, token := createStudent(t, db, "verify@test.com")

	course := courseModels.Course{Name: "Robotics Pro", PriceINR: 999}
	require.NoError(t, db.Create(&course).Error)
	order := seedPaidOrder(t, db, user.ID, course.ID)

	cart := studentModels.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&studentModels.CartItem{CartID: cart.ID, CourseID: course.ID}).Error)

	orig := verifyGatewaySignature
	defer func() { verifyGatewaySignature = orig }()
	verifyGatewaySignature = func(orderID, paymentID, signature string) bool { return true }

	resp, err := app.Test(jsonRequest("POST", "/order/verify", token, fiber.Map{
		"order_id":   order.GatewayOrderID,
		"payment_id": "pay_1",
		"signature":  "sig_1",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var gotOrder studentModels.Order
	require.NoError(t, db.First(&gotOrder, order.ID).Error)
	assert.True(t, gotOrder.IsPaid)
	assert.Equal(t, "pay_1", gotOrder.PaymentID)

	var payments int64
	db.Model(&studentModels.Payment{}).Where("order_id = ?", order.ID).Count(&payments)
	assert.Equal(t, int64(1), payments)

	var owned int64
	db.Model(&studentModels.PurchasedCourse{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&owned)
	assert.Equal(t, int64(1), owned)

	// Settled courses leave the cart.
	var cartItems int64
	db.Model(&studentModels.CartItem{}).Where("cart_id = ?", cart.ID).Count(&cartItems)
	assert.Zero(t, cartItems)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	app, db := setupStoreTest(t)
	user, token := createStudent(t, db, "badsig@test.com")

	course := courseModels.Course{Name: "Robotics Pro", PriceINR: 999}
	require.NoError(t, db.Create(&course).Error)
	order := seedPaidOrder(t, db, user.ID, course.ID)

	resp, err := app.Test(jsonRequest("POST", "/order/verify", token, fiber.Map{
		"order_id":   order.GatewayOrderID,
		"payment_id": "pay_1",
		"signature":  "forged",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var gotOrder studentModels.Order
	require.NoError(t, db.First(&gotOrder, order.ID).Error)
	assert.False(t, gotOrder.IsPaid)

	var owned int64
	db.Model(&studentModels.PurchasedCourse{}).Count(&owned)
	assert.Zero(t, owned)
}

func TestVerifyPaymentReplayRejected(t *testing.T) {
	app, db := setupStoreTest(t)
	user, token := createStudent(t, db, "replay@test.com")

	course := courseModels.Course{Name: "Robotics Pro", PriceINR: 999}
	require.NoError(t, db.Create(&course).Error)
	order := seedPaidOrder(t, db, user.ID, course.ID)

	orig := verifyGatewaySignature
	defer func() { verifyGatewaySignature = orig }()
	verifyGatewaySignature = func(orderID, paymentID, signature string) bool { return true }

	body := fiber.Map{
		"order_id":   order.GatewayOrderID,
		"payment_id": "pay_1",
		"signature":  "sig_1",
	}

	resp, err := app.Test(jsonRequest("POST", "/order/verify", token, body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/order/verify", token, body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// The grant stays single even after the replay attempt.
	var owned int64
	db.Model(&studentModels.PurchasedCourse{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&owned)
	assert.Equal(t, int64(1), owned)
}

func TestVerifyPaymentSomeoneElsesOrder(t *testing.T) {
	app, db := setupStoreTest(t)
	owner, _ := createStudent(t, db, "owner2@test.com")
	_, otherToken := createStudent(t, db, "other@test.com")

	course := courseModels.Course{Name: "Robotics Pro", PriceINR: 999}
	require.NoError(t, db.Create(&course).Error)
	order := seedPaidOrder(t, db, owner.ID, course.ID)

	orig := verifyGatewaySignature
	defer func() { verifyGatewaySignature = orig }()
	verifyGatewaySignature = func(orderID, paymentID, signature string) bool { return true }

	resp, err := app.Test(jsonRequest("POST", "/order/verify", otherToken, fiber.Map{
		"order_id":   order.GatewayOrderID,
		"payment_id": "pay_1",
		"signature":  "sig_1",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAddToCartDuplicateRejected(t *testing.T) {
	app, db := setupStoreTest(t)
	_, token := createStudent(t, db, "cart@test.com")

	course := courseModels.Course{Name: "Robotics Pro", PriceINR: 999}
	require.NoError(t, db.Create(&course).Error)

	resp, err := app.Test(jsonRequest("POST", "/cart/add", token, fiber.Map{"course_id": course.ID}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/cart/add", token, fiber.Map{"course_id": course.ID}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
