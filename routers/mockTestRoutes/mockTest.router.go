package mockTestRoutes

import (
	controllers "flms/controllers/course"
	"flms/middleware"
	validators "flms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupMockTestRoutes(app *fiber.App) {
	mockTestGroup := app.Group("/mocktest")

	mockTestGroup.Get("/list", controllers.MockTestList)
	mockTestGroup.Get("/:mock_test_id", validators.MockTestID(), middleware.JWTMiddleware, controllers.MockTestDetail)
	mockTestGroup.Post("/:mock_test_id/submit", validators.MockTestID(), validators.SubmitMockTest(), middleware.JWTMiddleware, middleware.RequireRole("STUDENT"), controllers.SubmitMockTest)
	mockTestGroup.Get("/:mock_test_id/result", validators.MockTestID(), middleware.JWTMiddleware, controllers.MockTestResult)

	app.Get("/my/mocktests", middleware.JWTMiddleware, controllers.MyMockTestAttempts)
}
