package authController

import (
	"log"
	"time"

	"flms/config"
	"flms/database"
	"flms/middleware"
	"flms/models"
	"flms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpValidity = 5 * time.Minute

// issueOTP invalidates older codes for the same purpose and persists a fresh
// expiring one.
func issueOTP(db *gorm.DB, userID uint, email, mobile, purpose string) (string, error) {
	code := utils.GenerateOTP()

	if err := db.Model(&models.OTP{}).
		Where("user_id = ? AND description = ? AND is_used = ?", userID, purpose, false).
		Update("is_used", true).Error; err != nil {
		return "", err
	}

	otp := models.OTP{
		UserID:      userID,
		Email:       email,
		Mobile:      mobile,
		Code:        code,
		ExpiresAt:   time.Now().Add(otpValidity),
		Description: purpose,
	}
	if err := db.Create(&otp).Error; err != nil {
		return "", err
	}
	return code, nil
}

// consumeOTP validates a submitted code and marks it used.
func consumeOTP(db *gorm.DB, userID uint, code, purpose string) bool {
	var otp models.OTP
	err := db.Where("user_id = ? AND code = ? AND description = ? AND is_used = ? AND is_deleted = ?",
		userID, code, purpose, false, false).
		Order("created_at desc").First(&otp).Error
	if err != nil || otp.IsExpired() {
		return false
	}
	db.Model(&otp).Update("is_used", true)
	return true
}

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		FullName: reqData.FullName,
		Email:    reqData.Email,
		Mobile:   reqData.Mobile,
		Password: string(hashedPassword),
		Role:     "STUDENT",
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to sign up user!", nil)
	}

	code, err := issueOTP(db, newUser.ID, newUser.Email, "", "EMAIL_VERIFY")
	if err != nil {
		log.Printf("Error issuing signup OTP: %v", err)
	} else {
		go func(email, otp string) {
			if err := utils.SendOTPEmail(otp, email); err != nil {
				log.Printf("Error sending signup OTP email: %v", err)
			}
		}(newUser.Email, code)
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.FullName, newUser.Role, newUser.Email, newUser.Mobile)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Signup successful, OTP sent to email!", fiber.Map{
		"user": fiber.Map{
			"id":        newUser.ID,
			"full_name": newUser.FullName,
			"email":     newUser.Email,
			"role":      newUser.Role,
		},
		"token": token,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	user.LastLogin = time.Now()
	db.Save(&user)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email, user.Mobile)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"user": fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		},
		"token": token,
	})
}

// AdminLogin is a login that additionally requires the ADMIN role.
func AdminLogin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	user.LastLogin = time.Now()
	db.Save(&user)

	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email, user.Mobile)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{"token": token})
}

func SendEmailOTP(c *fiber.Ctx) error {
	email := c.Locals("validatedEmail").(string)

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	code, err := issueOTP(db, user.ID, email, "", "EMAIL_VERIFY")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue OTP!", nil)
	}

	go func() {
		if err := utils.SendOTPEmail(code, email); err != nil {
			log.Printf("Error sending OTP email: %v", err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to email!", nil)
}

func VerifyEmailOTP(c *fiber.Ctx) error {
	email := c.Locals("validatedEmail").(string)
	code := c.Locals("validatedOTP").(string)

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if !consumeOTP(db, user.ID, code, "EMAIL_VERIFY") {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired OTP!", nil)
	}

	db.Model(&user).Update("is_email_verified", true)

	go func(email, name string) {
		if err := utils.SendWelcomeEmail(email, name); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}(user.Email, user.FullName)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully!", nil)
}

func SendPhoneOTP(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	mobile := c.Locals("validatedMobile").(string)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	code, err := issueOTP(db, user.ID, "", mobile, "PHONE_VERIFY")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue OTP!", nil)
	}

	go func() {
		if err := utils.SendOTPToMobile(mobile, code); err != nil {
			log.Printf("Error sending OTP SMS: %v", err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to mobile!", nil)
}

func VerifyPhoneOTP(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	mobile := c.Locals("validatedMobile").(string)
	code := c.Locals("validatedOTP").(string)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !consumeOTP(db, user.ID, code, "PHONE_VERIFY") {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired OTP!", nil)
	}

	db.Model(&user).Updates(map[string]interface{}{
		"mobile":             mobile,
		"is_mobile_verified": true,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mobile number verified successfully!", nil)
}

func ForgotPassword(c *fiber.Ctx) error {
	email := c.Locals("validatedEmail").(string)

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	code, err := issueOTP(db, user.ID, email, "", "PASSWORD_RESET")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue OTP!", nil)
	}

	go func() {
		if err := utils.SendOTPEmail(code, email); err != nil {
			log.Printf("Error sending reset OTP email: %v", err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset OTP sent to email!", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReset").(*struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if !consumeOTP(db, user.ID, reqData.OTP, "PASSWORD_RESET") {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired OTP!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	db.Model(&user).Update("password", string(hashedPassword))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", nil)
}

func ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedChangePassword").(*struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Old password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	db.Model(&user).Update("password", string(hashedPassword))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully!", nil)
}
