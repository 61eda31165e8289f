package userController

import (
	"log"
	"time"

	"flms/database"
	"flms/middleware"
	"flms/models"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
)

func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"id":                 user.ID,
		"full_name":          user.FullName,
		"email":              user.Email,
		"mobile":             user.Mobile,
		"role":               user.Role,
		"institution":        user.Institution,
		"location":           user.Location,
		"dob":                user.DOB,
		"profile_image":      utils.GetFileURL(user.ProfileImage),
		"is_email_verified":  user.IsEmailVerified,
		"is_mobile_verified": user.IsMobileVerified,
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedProfile").(*struct {
		FullName    string `json:"full_name"`
		Institution string `json:"institution"`
		Location    string `json:"location"`
		DOB         string `json:"dob"` // YYYY-MM-DD
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.FullName != "" {
		updates["full_name"] = reqData.FullName
	}
	if reqData.Institution != "" {
		updates["institution"] = reqData.Institution
	}
	if reqData.Location != "" {
		updates["location"] = reqData.Location
	}
	if reqData.DOB != "" {
		dob, err := time.Parse("2006-01-02", reqData.DOB)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "DOB must be YYYY-MM-DD!", nil)
		}
		updates["dob"] = dob
	}

	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			log.Printf("Error updating profile: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", nil)
}

func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Image file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "profile")
	if err != nil {
		log.Printf("Error saving profile image: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
	}

	// Replace the old image on disk once the new one is stored.
	oldImage := user.ProfileImage
	if err := db.Model(&user).Update("profile_image", path).Error; err != nil {
		utils.RemoveFile(path)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile image!", nil)
	}
	if oldImage != "" {
		utils.RemoveFile(oldImage)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile picture updated!", fiber.Map{
		"profile_image": utils.GetFileURL(path),
	})
}

func NewsletterSubscribe(c *fiber.Ctx) error {
	email := c.Locals("validatedEmail").(string)

	db := database.Database.Db

	if err := db.Where("email = ?", email).First(&models.NewsletterSubscriber{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already subscribed!", nil)
	}

	subscriber := models.NewsletterSubscriber{Email: email}
	if err := db.Create(&subscriber).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to subscribe!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscribed to newsletter!", nil)
}
