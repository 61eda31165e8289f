package controllers

import (
	"log"

	"flms/database"
	"flms/middleware"
	courseModels "flms/models/course"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Name             string   `json:"name"`
		Description      string   `json:"description"`
		Category         string   `json:"category"`
		AuthorName       string   `json:"author_name"`
		PriceINR         float64  `json:"price_inr"`
		OfferPrice       *float64 `json:"offer_price"`
		WhatYouWillLearn []string `json:"what_you_will_learn"`
		Position         int      `json:"position"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	newCourse := courseModels.Course{
		Name:             reqData.Name,
		Description:      reqData.Description,
		Category:         reqData.Category,
		AuthorName:       reqData.AuthorName,
		PriceINR:         reqData.PriceINR,
		OfferPrice:       reqData.OfferPrice,
		Position:         reqData.Position,
		WhatYouWillLearn: datatypes.NewJSONSlice(reqData.WhatYouWillLearn),
	}

	if err := db.Create(&newCourse).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", newCourse)
}

func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Name             string   `json:"name"`
		Description      string   `json:"description"`
		Category         string   `json:"category"`
		AuthorName       string   `json:"author_name"`
		PriceINR         *float64 `json:"price_inr"`
		OfferPrice       *float64 `json:"offer_price"`
		WhatYouWillLearn []string `json:"what_you_will_learn"`
		Position         *int     `json:"position"`
		Recommended      *bool    `json:"recommended"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Name != "" {
		course.Name = reqData.Name
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.AuthorName != "" {
		course.AuthorName = reqData.AuthorName
	}
	if reqData.PriceINR != nil {
		course.PriceINR = *reqData.PriceINR
	}
	if reqData.OfferPrice != nil {
		course.OfferPrice = reqData.OfferPrice
	}
	if reqData.WhatYouWillLearn != nil {
		course.WhatYouWillLearn = datatypes.NewJSONSlice(reqData.WhatYouWillLearn)
	}
	if reqData.Position != nil {
		course.Position = *reqData.Position
	}
	if reqData.Recommended != nil {
		course.Recommended = *reqData.Recommended
	}

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func UploadCourseThumbnail(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "thumbnails")
	if err != nil {
		log.Printf("Error saving thumbnail: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	oldPath := course.ThumbnailPath
	if err := db.Model(&course).Update("thumbnail_path", path).Error; err != nil {
		utils.RemoveFile(path)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	if oldPath != "" {
		utils.RemoveFile(oldPath)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded!", fiber.Map{
		"thumbnail": utils.GetFileURL(path),
	})
}

// DeleteCourse hard-deletes the course and its whole module/chapter/quiz
// tree, releasing video and thumbnail files from disk on the way.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tx := db.Begin()
	if err := courseModels.DeleteCourseTree(tx, courseID, utils.RemoveFile); err != nil {
		tx.Rollback()
		log.Printf("Error deleting course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
