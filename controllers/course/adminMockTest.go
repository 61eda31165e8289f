package controllers

import (
	"log"

	"flms/database"
	"flms/middleware"
	courseModels "flms/models/course"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateMockTest(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedMockTest").(*struct {
		Heading         string `json:"heading"`
		Description     string `json:"description"`
		DurationMinutes int    `json:"duration_minutes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	newMockTest := courseModels.MockTest{
		Heading:         reqData.Heading,
		Description:     reqData.Description,
		DurationMinutes: reqData.DurationMinutes,
	}

	if err := db.Create(&newMockTest).Error; err != nil {
		log.Printf("Error creating mock test: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create mock test!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Mock test created successfully!", newMockTest)
}

func UploadMockTestImage(c *fiber.Ctx) error {
	mockTestID := c.Locals("mockTestID").(uint)

	db := database.Database.Db

	var mockTest courseModels.MockTest
	if err := db.Where("id = ? AND is_deleted = ?", mockTestID, false).First(&mockTest).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Mock test not found!", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "mocktests")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	oldPath := mockTest.ImagePath
	if err := db.Model(&mockTest).Update("image_path", path).Error; err != nil {
		utils.RemoveFile(path)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update mock test!", nil)
	}
	if oldPath != "" {
		utils.RemoveFile(oldPath)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Image uploaded!", fiber.Map{
		"image": utils.GetFileURL(path),
	})
}

func CreateMockTestQuestion(c *fiber.Ctx) error {
	mockTestID := c.Locals("mockTestID").(uint)

	reqData, ok := c.Locals("validatedMockTestQuestion").(*struct {
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

	if err := db.Where("id = ? AND is_deleted = ?", mockTestID, false).First(&courseModels.MockTest{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Mock test not found!", nil)
	}

	newQuestion := courseModels.MockTestQuestion{
		MockTestID:    mockTestID,
		Question:      reqData.Question,
		Option1:       reqData.Option1,
		Option2:       reqData.Option2,
		Option3:       reqData.Option3,
		Option4:       reqData.Option4,
		CorrectOption: reqData.CorrectOption,
	}

	if err := db.Create(&newQuestion).Error; err != nil {
		log.Printf("Error creating mock test question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", newQuestion)
}

func DeleteMockTest(c *fiber.Ctx) error {
	mockTestID := c.Locals("mockTestID").(uint)

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", mockTestID, false).First(&courseModels.MockTest{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Mock test not found!", nil)
	}

	tx := db.Begin()
	if err := courseModels.DeleteMockTestTree(tx, mockTestID, utils.RemoveFile); err != nil {
		tx.Rollback()
		log.Printf("Error deleting mock test %d: %v", mockTestID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete mock test!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete mock test!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mock test deleted successfully!", nil)
}
