package authController

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flms/config"
	"flms/database"
	"flms/models"
	authValidators "flms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	config.AppConfig = &config.Config{
		JWTKey:    "test-key",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", authValidators.Signup(), Signup)
	authGroup.Post("/login", authValidators.Login(), Login)
	authGroup.Post("/admin/login", authValidators.Login(), AdminLogin)
	authGroup.Patch("/verify/email/otp", authValidators.VerifyEmailOTP(), VerifyEmailOTP)
	authGroup.Patch("/reset/password", authValidators.ResetPassword(), ResetPassword)

	return app, db
}

func authPost(app *fiber.App, method, target string, body interface{}) (*http.Response, error) {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return app.Test(req)
}

func TestSignupAndLogin(t *testing.T) {
	app, db := setupAuthTest(t)

	resp, err := authPost(app, "POST", "/auth/signup", fiber.Map{
		"full_name": "Asha Verma",
		"email":     "asha@test.com",
		"mobile":    "9876543210",
		"password":  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "asha@test.com").First(&user).Error)
	assert.Equal(t, "STUDENT", user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	resp, err = authPost(app, "POST", "/auth/login", fiber.Map{
		"email":    "asha@test.com",
		"password": "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = authPost(app, "POST", "/auth/login", fiber.Map{
		"email":    "asha@test.com",
		"password": "wrong",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app, _ := setupAuthTest(t)

	body := fiber.Map{
		"full_name": "Asha Verma",
		"email":     "dup@test.com",
		"mobile":    "9876543210",
		"password":  "secret123",
	}

	resp, err := authPost(app, "POST", "/auth/signup", body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = authPost(app, "POST", "/auth/signup", body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdminLoginRejectsStudent(t *testing.T) {
	app, db := setupAuthTest(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), 4)
	require.NoError(t, db.Create(&models.User{
		FullName: "Asha Verma",
		Email:    "student@test.com",
		Password: string(hashed),
		Role:     "STUDENT",
	}).Error)

	resp, err := authPost(app, "POST", "/auth/admin/login", fiber.Map{
		"email":    "student@test.com",
		"password": "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVerifyEmailOTP(t *testing.T) {
	app, db := setupAuthTest(t)

	user := models.User{FullName: "Asha", Email: "otp@test.com", Password: "x", Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.OTP{
		UserID:      user.ID,
		Email:       user.Email,
		Code:        "482913",
		ExpiresAt:   time.Now().Add(5 * time.Minute),
		Description: "EMAIL_VERIFY",
	}).Error)

	resp, err := authPost(app, "PATCH", "/auth/verify/email/otp", fiber.Map{
		"email": "otp@test.com",
		"otp":   "000000",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = authPost(app, "PATCH", "/auth/verify/email/otp", fiber.Map{
		"email": "otp@test.com",
		"otp":   "482913",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.True(t, got.IsEmailVerified)

	// A consumed code cannot be replayed.
	resp, err = authPost(app, "PATCH", "/auth/verify/email/otp", fiber.Map{
		"email": "otp@test.com",
		"otp":   "482913",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExpiredOTPRejected(t *testing.T) {
	app, db := setupAuthTest(t)

	user := models.User{FullName: "Asha", Email: "expired@test.com", Password: "x", Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.OTP{
		UserID:      user.ID,
		Email:       user.Email,
		Code:        "482913",
		ExpiresAt:   time.Now().Add(-1 * time.Minute),
		Description: "EMAIL_VERIFY",
	}).Error)

	resp, err := authPost(app, "PATCH", "/auth/verify/email/otp", fiber.Map{
		"email": "expired@test.com",
		"otp":   "482913",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestResetPasswordWithOTP(t *testing.T) {
	app, db := setupAuthTest(t)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass123"), 4)
	user := models.User{FullName: "Asha", Email: "reset@test.com", Password: string(hashed), Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.OTP{
		UserID:      user.ID,
		Email:       user.Email,
		Code:        "193847",
		ExpiresAt:   time.Now().Add(5 * time.Minute),
		Description: "PASSWORD_RESET",
	}).Error)

	resp, err := authPost(app, "PATCH", "/auth/reset/password", fiber.Map{
		"email":        "reset@test.com",
		"otp":          "193847",
		"new_password": "newpass123",
	})
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("newpass123")))
}
