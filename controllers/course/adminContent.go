package controllers

import (
	"log"

	"flms/database"
	"flms/middleware"
	courseModels "flms/models/course"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedModule").(*struct {
		ModuleName string `json:"module_name"`
		Position   int    `json:"position"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&courseModels.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	newModule := courseModels.Module{
		CourseID:   courseID,
		ModuleName: reqData.ModuleName,
		Position:   reqData.Position,
	}

	if err := db.Create(&newModule).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", newModule)
}

func DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db

	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	tx := db.Begin()
	if err := courseModels.DeleteModuleTree(tx, moduleID, utils.RemoveFile); err != nil {
		tx.Rollback()
		log.Printf("Error deleting module %d: %v", moduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}
	if err := courseModels.RecalcCourseChapters(tx, module.CourseID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}
	if err := courseModels.RecalcCourseQuizzes(tx, module.CourseID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// CreateChapter stores the uploaded video first, then writes the row and the
// refreshed chapter counters in one transaction. The saved file is removed
// again if the transaction fails.
func CreateChapter(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)
	chapterName := c.Locals("validatedChapterName").(string)
	chapterDescription := c.Locals("validatedChapterDescription").(string)

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&courseModels.Module{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	file, err := c.FormFile("video")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video file is required!", nil)
	}

	videoPath, err := utils.SaveUploadedFile(file, "videos")
	if err != nil {
		log.Printf("Error saving chapter video: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save video!", nil)
	}

	newChapter := courseModels.Chapter{
		ModuleID:           moduleID,
		ChapterName:        chapterName,
		ChapterDescription: chapterDescription,
		VideoPath:          videoPath,
	}

	tx := db.Begin()
	if err := tx.Create(&newChapter).Error; err != nil {
		tx.Rollback()
		utils.RemoveFile(videoPath)
		log.Printf("Error creating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}
	if err := courseModels.RecalcModuleChapters(tx, moduleID); err != nil {
		tx.Rollback()
		utils.RemoveFile(videoPath)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		utils.RemoveFile(videoPath)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", newChapter)
}

func DeleteChapter(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(uint)

	db := database.Database.Db

	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	tx := db.Begin()

	courseID, err := courseModels.CourseIDForChapter(tx, chapterID)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if err := courseModels.DeleteChapterTree(tx, chapterID, utils.RemoveFile); err != nil {
		tx.Rollback()
		log.Printf("Error deleting chapter %d: %v", chapterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}
	if err := courseModels.RecalcModuleChapters(tx, chapter.ModuleID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}
	if err := courseModels.RecalcCourseQuizzes(tx, courseID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}

func CreateQuiz(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(uint)

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Question      string `json:"question"`
		Option1       string `json:"option_1"`
		Option2       string `json:"option_2"`
		Option3       string `json:"option_3"`
		Option4       string `json:"option_4"`
		CorrectOption int    `json:"correct_option"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	newQuiz := courseModels.Quiz{
		ChapterID:     chapterID,
		Question:      reqData.Question,
		Option1:       reqData.Option1,
		Option2:       reqData.Option2,
		Option3:       reqData.Option3,
		Option4:       reqData.Option4,
		CorrectOption: reqData.CorrectOption,
	}

	tx := db.Begin()

	courseID, err := courseModels.CourseIDForChapter(tx, chapterID)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if err := tx.Create(&newQuiz).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}
	if err := courseModels.RecalcCourseQuizzes(tx, courseID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", newQuiz)
}

func DeleteQuiz(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(uint)

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	tx := db.Begin()

	courseID, err := courseModels.CourseIDForChapter(tx, quiz.ChapterID)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if err := tx.Unscoped().Delete(&courseModels.Quiz{}, quizID).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}
	if err := courseModels.RecalcCourseQuizzes(tx, courseID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}
