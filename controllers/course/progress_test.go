package controllers

import (
	"strconv"
	"testing"

	courseModels "flms/models/course"
	studentModels "flms/models/student"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// seedCourseTree builds a course with 4 chapters and 2 quizzes, with the
// denormalized totals already in place.
func seedCourseTree(t *testing.T, db *gorm.DB) (courseModels.Course, []courseModels.Chapter, []courseModels.Quiz) {
	course := courseModels.Course{Name: "Robotics Basics", PriceINR: 999, TotalChapters: 4, TotalQuizzes: 2}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, ModuleName: "Intro", TotalChapters: 4}
	require.NoError(t, db.Create(&module).Error)

	chapters := make([]courseModels.Chapter, 0, 4)
	for i := 0; i < 4; i++ {
		chapter := courseModels.Chapter{ModuleID: module.ID, ChapterName: "Ch"}
		require.NoError(t, db.Create(&chapter).Error)
		chapters = append(chapters, chapter)
	}

	quizzes := make([]courseModels.Quiz, 0, 2)
	for i := 0; i < 2; i++ {
		quiz := courseModels.Quiz{ChapterID: chapters[i].ID, Question: "Q", CorrectOption: 3}
		require.NoError(t, db.Create(&quiz).Error)
		quizzes = append(quizzes, quiz)
	}

	return course, chapters, quizzes
}

func TestUpdateProgressDerivesPercentage(t *testing.T) {
	app, db := setupCourseTest(t)
	user, token := newStudent(t, db, "progress@test.com")
	course, chapters, quizzes := seedCourseTree(t, db)
	require.NoError(t, db.Create(&studentModels.PurchasedCourse{UserID: user.ID, CourseID: course.ID}).Error)

	for _, chapterID := range []uint{chapters[0].ID, chapters[1].ID} {
		resp, err := postJSON(app, "/course/"+itoa(course.ID)+"/progress", token, fiber.Map{
			"chapter_id": chapterID,
		})
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := postJSON(app, "/course/"+itoa(course.ID)+"/progress", token, fiber.Map{
		"quiz_id": quizzes[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// 2 of 4 chapters plus 1 of 2 quizzes is exactly half.
	var progress studentModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&progress).Error)
	assert.Equal(t, 50.0, progress.Progress)
	assert.Equal(t, studentModels.ProgressInProgress, progress.Status())
}

func TestUpdateProgressIdempotentMarks(t *testing.T) {
	app, db := setupCourseTest(t)
	user, token := newStudent(t, db, "idem@test.com")
	course, chapters, _ := seedCourseTree(t, db)
	require.NoError(t, db.Create(&studentModels.PurchasedCourse{UserID: user.ID, CourseID: course.ID}).Error)

	body := fiber.Map{"chapter_id": chapters[0].ID}
	for i := 0; i < 3; i++ {
		resp, err := postJSON(app, "/course/"+itoa(course.ID)+"/progress", token, body)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var progress studentModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&progress).Error)
	assert.Equal(t, 17.5, progress.Progress)
	assert.Len(t, []uint(progress.CompletedChapters), 1)
}

func TestUpdateProgressUnmark(t *testing.T) {
	app, db := setupCourseTest(t)
	user, token := newStudent(t, db, "unmark@test.com")
	course, chapters, _ := seedCourseTree(t, db)
	require.NoError(t, db.Create(&studentModels.PurchasedCourse{UserID: user.ID, CourseID: course.ID}).Error)

	resp, err := postJSON(app, "/course/"+itoa(course.ID)+"/progress", token, fiber.Map{
		"chapter_id": chapters[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	completed := false
	resp, err = postJSON(app, "/course/"+itoa(course.ID)+"/progress", token, fiber.Map{
		"chapter_id": chapters[0].ID,
		"completed":  completed,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var progress studentModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&progress).Error)
	assert.Equal(t, 0.0, progress.Progress)
	assert.Equal(t, studentModels.ProgressNotStarted, progress.Status())
}

func TestUpdateProgressRequiresPurchase(t *testing.T) {
	app, db := setupCourseTest(t)
	_, token := newStudent(t, db, "nopurchase@test.com")
	course, chapters, _ := seedCourseTree(t, db)

	resp, err := postJSON(app, "/course/"+itoa(course.ID)+"/progress", token, fiber.Map{
		"chapter_id": chapters[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateProgressForeignChapterRejected(t *testing.T) {
	app, db := setupCourseTest(t)
	user, token := newStudent(t, db, "foreign@test.com")
	course, _, _ := seedCourseTree(t, db)
	_, otherChapters, _ := seedCourseTree(t, db)
	require.NoError(t, db.Create(&studentModels.PurchasedCourse{UserID: user.ID, CourseID: course.ID}).Error)

	resp, err := postJSON(app, "/course/"+itoa(course.ID)+"/progress", token, fiber.Map{
		"chapter_id": otherChapters[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitQuizAttemptOnceOnly(t *testing.T) {
	app, db := setupCourseTest(t)
	user, token := newStudent(t, db, "quiz@test.com")
	course, _, quizzes := seedCourseTree(t, db)
	require.NoError(t, db.Create(&studentModels.PurchasedCourse{UserID: user.ID, CourseID: course.ID}).Error)

	resp, err := postJSON(app, "/quiz/"+itoa(quizzes[0].ID)+"/attempt", token, fiber.Map{
		"selected_option": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var attempt studentModels.QuizAttempt
	require.NoError(t, db.Where("user_id = ? AND quiz_id = ?", user.ID, quizzes[0].ID).First(&attempt).Error)
	assert.True(t, attempt.IsCorrect)

	resp, err = postJSON(app, "/quiz/"+itoa(quizzes[0].ID)+"/attempt", token, fiber.Map{
		"selected_option": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSubmitQuizAttemptWrongAnswerRecorded(t *testing.T) {
	app, db := setupCourseTest(t)
	user, token := newStudent(t, db, "wrong@test.com")
	course, _, quizzes := seedCourseTree(t, db)
	require.NoError(t, db.Create(&studentModels.PurchasedCourse{UserID: user.ID, CourseID: course.ID}).Error)

	resp, err := postJSON(app, "/quiz/"+itoa(quizzes[1].ID)+"/attempt", token, fiber.Map{
		"selected_option": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var attempt studentModels.QuizAttempt
	require.NoError(t, db.Where("user_id = ? AND quiz_id = ?", user.ID, quizzes[1].ID).First(&attempt).Error)
	assert.False(t, attempt.IsCorrect)
}

func TestSubmitQuizAttemptWithoutPurchase(t *testing.T) {
	app, db := setupCourseTest(t)
	_, token := newStudent(t, db, "locked@test.com")
	_, _, quizzes := seedCourseTree(t, db)

	resp, err := postJSON(app, "/quiz/"+itoa(quizzes[0].ID)+"/attempt", token, fiber.Map{
		"selected_option": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
