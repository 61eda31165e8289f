package controllers

import (
	"log"

	"flms/database"
	"flms/middleware"
	courseModels "flms/models/course"
	studentModels "flms/models/student"

	"github.com/gofiber/fiber/v2"
)

// SubmitQuizAttempt records a learner's single answer to a chapter quiz.
// A second attempt at the same quiz is rejected.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	quizID := c.Locals("quizID").(uint)
	selectedOption := c.Locals("validatedSelectedOption").(int)

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	courseID, err := courseModels.CourseIDForChapter(db, quiz.ChapterID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}
	if !hasPurchased(db, userID, courseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Purchase the course to attempt quizzes!", nil)
	}

	var existing studentModels.QuizAttempt
	if err := db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already attempted this quiz!", nil)
	}

	attempt := studentModels.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		SelectedOption: selectedOption,
		IsCorrect:      selectedOption == quiz.CorrectOption,
	}

	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz attempt recorded!", fiber.Map{
		"quiz_id":         quizID,
		"selected_option": selectedOption,
		"is_correct":      attempt.IsCorrect,
		"correct_option":  quiz.CorrectOption,
	})
}
