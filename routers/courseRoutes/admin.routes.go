package courseRoutes

import (
	controllers "flms/controllers/course"
	"flms/middleware"
	validators "flms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin catalog management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Put("/:id", validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	adminGroup.Post("/:id/thumbnail", validators.CourseID(), controllers.UploadCourseThumbnail)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.DeleteCourse)

	// Module management
	adminGroup.Post("/:id/module", validators.CourseID(), validators.CreateModule(), controllers.CreateModule)

	moduleGroup := app.Group("/admin/module", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	moduleGroup.Delete("/:module_id", validators.ModuleID(), controllers.DeleteModule)
	moduleGroup.Post("/:module_id/chapter", validators.ModuleID(), validators.CreateChapter(), controllers.CreateChapter)

	chapterGroup := app.Group("/admin/chapter", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	chapterGroup.Delete("/:chapter_id", validators.ChapterID(), controllers.DeleteChapter)
	chapterGroup.Post("/:chapter_id/quiz", validators.ChapterID(), validators.CreateQuiz(), controllers.CreateQuiz)

	quizGroup := app.Group("/admin/quiz", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	quizGroup.Delete("/:quiz_id", validators.QuizID(), controllers.DeleteQuiz)

	// Mock test management
	mockTestGroup := app.Group("/admin/mocktest", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	mockTestGroup.Post("/create", validators.CreateMockTest(), controllers.CreateMockTest)
	mockTestGroup.Post("/:mock_test_id/image", validators.MockTestID(), controllers.UploadMockTestImage)
	mockTestGroup.Post("/:mock_test_id/question", validators.MockTestID(), validators.CreateMockTestQuestion(), controllers.CreateMockTestQuestion)
	mockTestGroup.Delete("/:mock_test_id", validators.MockTestID(), controllers.DeleteMockTest)
}
