package controllers

import (
	"log"
	"time"

	"flms/database"
	"flms/middleware"
	courseModels "flms/models/course"
	studentModels "flms/models/student"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// chapterBelongsToCourse walks the chapter's module up to its course.
func chapterBelongsToCourse(db *gorm.DB, chapterID, courseID uint) bool {
	owner, err := courseModels.CourseIDForChapter(db, chapterID)
	return err == nil && owner == courseID
}

func quizBelongsToCourse(db *gorm.DB, quizID, courseID uint) bool {
	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return false
	}
	return chapterBelongsToCourse(db, quiz.ChapterID, courseID)
}

// UpdateCourseProgress toggles one chapter or quiz in the learner's
// completed sets and rederives the weighted percentage. The percentage is
// never accepted from the client.
func UpdateCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		ChapterID *uint `json:"chapter_id"`
		QuizID    *uint `json:"quiz_id"`
		Completed *bool `json:"completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	completed := true
	if reqData.Completed != nil {
		completed = *reqData.Completed
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !hasPurchased(db, userID, courseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Purchase the course to track progress!", nil)
	}

	if reqData.ChapterID != nil && !chapterBelongsToCourse(db, *reqData.ChapterID, courseID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found in this course!", nil)
	}
	if reqData.QuizID != nil && !quizBelongsToCourse(db, *reqData.QuizID, courseID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found in this course!", nil)
	}

	var progress studentModels.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		progress = studentModels.CourseProgress{UserID: userID, CourseID: courseID}
	}

	if reqData.ChapterID != nil {
		progress.MarkChapter(*reqData.ChapterID, completed)
	}
	if reqData.QuizID != nil {
		progress.MarkQuiz(*reqData.QuizID, completed)
	}

	progress.Recalculate(course.TotalChapters, course.TotalQuizzes)
	progress.LastActivityAt = time.Now()

	if err := db.Save(&progress).Error; err != nil {
		log.Printf("Error saving progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", fiber.Map{
		"course_id": courseID,
		"progress":  progress.Progress,
		"status":    progress.Status(),
	})
}

// MyCourses lists the learner's purchased courses grouped into completed,
// in-progress and not-started buckets.
func MyCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var purchases []studentModels.PurchasedCourse
	if err := db.Where("user_id = ?", userID).Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	completed := []fiber.Map{}
	inProgress := []fiber.Map{}
	notStarted := []fiber.Map{}

	for _, purchase := range purchases {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", purchase.CourseID, false).First(&course).Error; err != nil {
			continue
		}

		var progress studentModels.CourseProgress
		if err := db.Where("user_id = ? AND course_id = ?", userID, purchase.CourseID).First(&progress).Error; err != nil {
			progress = studentModels.CourseProgress{UserID: userID, CourseID: purchase.CourseID}
		}

		entry := fiber.Map{
			"id":          course.ID,
			"name":        course.Name,
			"category":    course.Category,
			"author_name": course.AuthorName,
			"thumbnail":   utils.GetFileURL(course.ThumbnailPath),
			"progress":    progress.Progress,
		}

		switch progress.Status() {
		case studentModels.ProgressCompleted:
			completed = append(completed, entry)
		case studentModels.ProgressInProgress:
			inProgress = append(inProgress, entry)
		default:
			notStarted = append(notStarted, entry)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "My courses fetched!", fiber.Map{
		"completed":   completed,
		"in_progress": inProgress,
		"not_started": notStarted,
	})
}
