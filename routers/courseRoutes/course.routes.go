package courseRoutes

import (
	controllers "flms/controllers/course"
	"flms/middleware"
	validators "flms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog browsing
	courseGroup.Get("/list", validators.CourseList(), controllers.CourseList)
	courseGroup.Get("/recommended", controllers.RecommendedCourses)
	courseGroup.Get("/:id", validators.CourseID(), middleware.JWTMiddleware, controllers.CourseDetail)
	courseGroup.Get("/:id/meta", validators.CourseID(), controllers.CourseMeta)

	// Learning
	courseGroup.Post("/:id/progress", validators.CourseID(), validators.UpdateProgress(), middleware.JWTMiddleware, middleware.RequireRole("STUDENT"), controllers.UpdateCourseProgress)

	chapterGroup := app.Group("/chapter")
	chapterGroup.Get("/:chapter_id/video", validators.ChapterID(), middleware.JWTMiddleware, middleware.RequireRole("STUDENT"), controllers.ChapterVideo)

	quizGroup := app.Group("/quiz")
	quizGroup.Post("/:quiz_id/attempt", validators.QuizID(), validators.SubmitQuizAttempt(), middleware.JWTMiddleware, middleware.RequireRole("STUDENT"), controllers.SubmitQuizAttempt)

	// My learning dashboard
	app.Get("/my/courses", middleware.JWTMiddleware, controllers.MyCourses)
}
