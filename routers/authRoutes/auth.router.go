package authRoutes

import (
	authControllers "flms/controllers/auth"
	"flms/middleware"
	authValidators "flms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/admin/login", authValidators.Login(), authControllers.AdminLogin)
	authGroup.Post("/send/email/otp", authValidators.SendEmailOTP(), authControllers.SendEmailOTP)
	authGroup.Patch("/verify/email/otp", authValidators.VerifyEmailOTP(), authControllers.VerifyEmailOTP)
	authGroup.Post("/send/phone/otp", authValidators.SendPhoneOTP(), middleware.JWTMiddleware, authControllers.SendPhoneOTP)
	authGroup.Patch("/verify/phone/otp", authValidators.VerifyPhoneOTP(), middleware.JWTMiddleware, authControllers.VerifyPhoneOTP)
	authGroup.Post("/forgot/password", authValidators.SendEmailOTP(), authControllers.ForgotPassword)
	authGroup.Patch("/reset/password", authValidators.ResetPassword(), authControllers.ResetPassword)
	authGroup.Put("/change/password", authValidators.ChangePassword(), middleware.JWTMiddleware, authControllers.ChangePassword)
}
