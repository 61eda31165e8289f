package userRoutes

import (
	userControllers "flms/controllers/userControllers"
	"flms/middleware"
	userValidators "flms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Patch("/profile", userValidators.UpdateProfile(), middleware.JWTMiddleware, userControllers.UpdateProfile)
	userGroup.Post("/profile/picture", middleware.JWTMiddleware, userControllers.UploadProfilePicture)

	app.Post("/newsletter/subscribe", userValidators.NewsletterSubscribe(), userControllers.NewsletterSubscribe)
}
