package controllers

import (
	"flms/database"
	"flms/middleware"
	courseModels "flms/models/course"
	studentModels "flms/models/student"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// hasPurchased reports course ownership, which gates videos and progress.
func hasPurchased(db *gorm.DB, userID, courseID uint) bool {
	var n int64
	db.Model(&studentModels.PurchasedCourse{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n)
	return n > 0
}

func courseSummary(course *courseModels.Course) fiber.Map {
	return fiber.Map{
		"id":             course.ID,
		"name":           course.Name,
		"category":       course.Category,
		"author_name":    course.AuthorName,
		"thumbnail":      utils.GetFileURL(course.ThumbnailPath),
		"price_inr":      course.PriceINR,
		"offer_price":    course.OfferPrice,
		"recommended":    course.Recommended,
		"total_chapters": course.TotalChapters,
		"total_quizzes":  course.TotalQuizzes,
	}
}

func CourseList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}

	db := database.Database.Db

	query := db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR category LIKE ? OR author_name LIKE ?", like, like, like, like)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	query.Count(&total)

	var courses []courseModels.Course
	if err := query.Order("position asc, id asc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	list := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		list = append(list, courseSummary(&courses[i]))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": list,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func RecommendedCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("recommended = ? AND is_deleted = ?", true, false).
		Order("position asc, id asc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	list := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		list = append(list, courseSummary(&courses[i]))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recommended courses fetched!", list)
}

// CourseDetail returns the full catalog entry with its module and chapter
// tree. Video paths are only exposed to buyers; everyone else sees names.
func CourseDetail(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	userID, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	purchased := userID != 0 && hasPurchased(db, userID, courseID)

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("position asc, id asc").Find(&modules)

	moduleList := make([]fiber.Map, 0, len(modules))
	for _, module := range modules {
		var chapters []courseModels.Chapter
		db.Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Order("id asc").Find(&chapters)

		chapterList := make([]fiber.Map, 0, len(chapters))
		for _, chapter := range chapters {
			entry := fiber.Map{
				"id":           chapter.ID,
				"chapter_name": chapter.ChapterName,
				"description":  chapter.ChapterDescription,
			}
			if purchased {
				entry["video"] = utils.GetFileURL(chapter.VideoPath)

				var quizzes []courseModels.Quiz
				db.Where("chapter_id = ? AND is_deleted = ?", chapter.ID, false).
					Order("id asc").Find(&quizzes)

				quizList := make([]fiber.Map, 0, len(quizzes))
				for _, quiz := range quizzes {
					quizList = append(quizList, fiber.Map{
						"id":       quiz.ID,
						"question": quiz.Question,
						"option_1": quiz.Option1,
						"option_2": quiz.Option2,
						"option_3": quiz.Option3,
						"option_4": quiz.Option4,
					})
				}
				entry["quizzes"] = quizList
			}
			chapterList = append(chapterList, entry)
		}

		moduleList = append(moduleList, fiber.Map{
			"id":             module.ID,
			"module_name":    module.ModuleName,
			"total_chapters": module.TotalChapters,
			"chapters":       chapterList,
		})
	}

	detail := courseSummary(&course)
	detail["description"] = course.Description
	detail["what_you_will_learn"] = course.WhatYouWillLearn
	detail["purchased"] = purchased
	detail["modules"] = moduleList

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course detail fetched!", detail)
}

// CourseMeta reports aggregate catalog data for a course, including the
// total video runtime probed from the stored files.
func CourseMeta(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []courseModels.Chapter
	db.Joins("JOIN modules ON modules.id = chapters.module_id").
		Where("modules.course_id = ? AND chapters.is_deleted = ? AND modules.is_deleted = ?", courseID, false, false).
		Find(&chapters)

	var totalMinutes float64
	for _, chapter := range chapters {
		totalMinutes += utils.GetVideoDurationMinutes(chapter.VideoPath)
	}

	var enrolled int64
	db.Model(&studentModels.PurchasedCourse{}).Where("course_id = ?", courseID).Count(&enrolled)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course meta fetched!", fiber.Map{
		"id":                  course.ID,
		"total_chapters":      course.TotalChapters,
		"total_quizzes":       course.TotalQuizzes,
		"total_video_minutes": totalMinutes,
		"enrolled_students":   enrolled,
	})
}

// ChapterVideo serves a chapter's video file to its course's buyers.
func ChapterVideo(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(uint)
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	courseID, err := courseModels.CourseIDForChapter(db, chapterID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if !hasPurchased(db, userID, courseID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Purchase the course to watch this video!", nil)
	}

	return c.SendFile(chapter.VideoPath)
}
