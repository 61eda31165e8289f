package storeRoutes

import (
	storeControllers "flms/controllers/store"
	"flms/middleware"
	storeValidators "flms/validators/store"

	"github.com/gofiber/fiber/v2"
)

func SetupStoreRoutes(app *fiber.App) {
	cartGroup := app.Group("/cart", middleware.JWTMiddleware)

	cartGroup.Get("/", storeControllers.GetCart)
	cartGroup.Post("/add", storeValidators.AddToCart(), storeControllers.AddToCart)
	cartGroup.Delete("/:course_id", storeValidators.CartCourseID(), storeControllers.RemoveFromCart)

	orderGroup := app.Group("/order", middleware.JWTMiddleware)

	orderGroup.Post("/create", storeValidators.CreateOrder(), storeControllers.CreateOrder)
	orderGroup.Post("/verify", storeValidators.VerifyPayment(), storeControllers.VerifyPayment)
	orderGroup.Get("/list", storeControllers.MyOrders)

	app.Get("/my/purchases", middleware.JWTMiddleware, storeControllers.MyPurchases)
}
