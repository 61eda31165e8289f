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
)

func MockTestList(c *fiber.Ctx) error {
	db := database.Database.Db

	var mockTests []courseModels.MockTest
	if err := db.Where("is_deleted = ?", false).Order("id asc").Find(&mockTests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch mock tests!", nil)
	}

	list := make([]fiber.Map, 0, len(mockTests))
	for _, mt := range mockTests {
		var questions int64
		db.Model(&courseModels.MockTestQuestion{}).
			Where("mock_test_id = ? AND is_deleted = ?", mt.ID, false).Count(&questions)

		list = append(list, fiber.Map{
			"id":               mt.ID,
			"heading":          mt.Heading,
			"description":      mt.Description,
			"image":            utils.GetFileURL(mt.ImagePath),
			"duration_minutes": mt.DurationMinutes,
			"total_questions":  questions,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mock tests fetched!", list)
}

// MockTestDetail returns the question paper without correct options.
func MockTestDetail(c *fiber.Ctx) error {
	mockTestID := c.Locals("mockTestID").(uint)

	db := database.Database.Db

	var mockTest courseModels.MockTest
	if err := db.Where("id = ? AND is_deleted = ?", mockTestID, false).First(&mockTest).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Mock test not found!", nil)
	}

	var questions []courseModels.MockTestQuestion
	db.Where("mock_test_id = ? AND is_deleted = ?", mockTestID, false).
		Order("id asc").Find(&questions)

	questionList := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		questionList = append(questionList, fiber.Map{
			"id":       q.ID,
			"question": q.Question,
			"option_1": q.Option1,
			"option_2": q.Option2,
			"option_3": q.Option3,
			"option_4": q.Option4,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mock test fetched!", fiber.Map{
		"id":               mockTest.ID,
		"heading":          mockTest.Heading,
		"description":      mockTest.Description,
		"image":            utils.GetFileURL(mockTest.ImagePath),
		"duration_minutes": mockTest.DurationMinutes,
		"questions":        questionList,
	})
}

// parseStartTime accepts RFC3339 with or without a zone offset; a naive
// timestamp is taken as UTC.
func parseStartTime(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// SubmitMockTest scores a full submission in one shot. Checks run strictly
// in order: existence, replay, payload shape, question bank, answer ids,
// option range, start time, time limit. A rejected submission stores
// nothing, so the learner keeps the attempt.
func SubmitMockTest(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	mockTestID := c.Locals("mockTestID").(uint)

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Answers []struct {
			QuizID         uint `json:"quiz_id"`
			SelectedOption int  `json:"selected_option"`
		} `json:"answers"`
		StartTime string `json:"start_time"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var mockTest courseModels.MockTest
	if err := db.Where("id = ? AND is_deleted = ?", mockTestID, false).First(&mockTest).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Mock test not found!", nil)
	}

	var prior studentModels.MockTestAttempt
	if err := db.Where("user_id = ? AND mock_test_id = ?", userID, mockTestID).First(&prior).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already attempted this mock test!", nil)
	}

	var questions []courseModels.MockTestQuestion
	if err := db.Where("mock_test_id = ? AND is_deleted = ?", mockTestID, false).Find(&questions).Error; err != nil || len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This mock test has no questions!", nil)
	}

	// Submitted quiz ids must be exactly the question bank, no more, no less.
	questionByID := make(map[uint]*courseModels.MockTestQuestion, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}
	submitted := make(map[uint]bool, len(reqData.Answers))
	for _, answer := range reqData.Answers {
		submitted[answer.QuizID] = true
	}
	if len(submitted) != len(questionByID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers must cover every question exactly once!", nil)
	}
	for id := range submitted {
		if _, found := questionByID[id]; !found {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers must cover every question exactly once!", nil)
		}
	}

	for _, answer := range reqData.Answers {
		if answer.SelectedOption < 1 || answer.SelectedOption > 4 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Selected option must be between 1 and 4!", nil)
		}
	}

	startTime, parsed := parseStartTime(reqData.StartTime)
	if !parsed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid start_time format!", nil)
	}

	now := time.Now().UTC()
	if mockTest.DurationMinutes > 0 {
		elapsed := now.Sub(startTime)
		if elapsed > time.Duration(mockTest.DurationMinutes)*time.Minute {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Time limit exceeded, submission rejected!", nil)
		}
	}

	score := 0
	answers := make([]studentModels.MockTestAnswer, 0, len(reqData.Answers))
	for _, answer := range reqData.Answers {
		if question := questionByID[answer.QuizID]; question != nil && answer.SelectedOption == question.CorrectOption {
			score++
		}
		answers = append(answers, studentModels.MockTestAnswer{
			QuizID:         answer.QuizID,
			SelectedOption: answer.SelectedOption,
		})
	}

	attempt := studentModels.MockTestAttempt{
		UserID:         userID,
		MockTestID:     mockTestID,
		Answers:        answers,
		Score:          score,
		TotalQuestions: len(questions),
		StartTime:      startTime,
		EndTime:        now,
	}

	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving mock test attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Mock test submitted!", fiber.Map{
		"mock_test_id":    mockTestID,
		"score":           score,
		"total_questions": len(questions),
	})
}

// MyMockTestAttempts lists the learner's past attempts with scores.
func MyMockTestAttempts(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var attempts []studentModels.MockTestAttempt
	if err := db.Where("user_id = ?", userID).Order("id desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	list := make([]fiber.Map, 0, len(attempts))
	for _, attempt := range attempts {
		var mockTest courseModels.MockTest
		if err := db.Where("id = ?", attempt.MockTestID).First(&mockTest).Error; err != nil {
			continue
		}
		list = append(list, fiber.Map{
			"mock_test_id":    attempt.MockTestID,
			"heading":         mockTest.Heading,
			"score":           attempt.Score,
			"total_questions": attempt.TotalQuestions,
			"attempted_at":    attempt.EndTime,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched!", list)
}

// MockTestResult returns the stored attempt with a per-question breakdown.
func MockTestResult(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	mockTestID := c.Locals("mockTestID").(uint)

	db := database.Database.Db

	var attempt studentModels.MockTestAttempt
	if err := db.Where("user_id = ? AND mock_test_id = ?", userID, mockTestID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No attempt found for this mock test!", nil)
	}

	var questions []courseModels.MockTestQuestion
	db.Where("mock_test_id = ?", mockTestID).Find(&questions)

	questionByID := make(map[uint]*courseModels.MockTestQuestion, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}

	breakdown := make([]fiber.Map, 0, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		question := questionByID[answer.QuizID]
		if question == nil {
			continue
		}
		breakdown = append(breakdown, fiber.Map{
			"quiz_id":         answer.QuizID,
			"question":        question.Question,
			"selected_option": answer.SelectedOption,
			"selected_text":   question.OptionText(answer.SelectedOption),
			"correct_option":  question.CorrectOption,
			"correct_text":    question.OptionText(question.CorrectOption),
			"is_correct":      answer.SelectedOption == question.CorrectOption,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mock test result fetched!", fiber.Map{
		"mock_test_id":    mockTestID,
		"score":           attempt.Score,
		"total_questions": attempt.TotalQuestions,
		"start_time":      attempt.StartTime,
		"end_time":        attempt.EndTime,
		"answers":         breakdown,
	})
}
