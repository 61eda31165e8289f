package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP is a persisted, expiring one-time code for email or mobile verification.
type OTP struct {
	gorm.Model
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Email       string    `gorm:"size:100;index" json:"email,omitempty"`
	Mobile      string    `gorm:"size:15;index" json:"mobile,omitempty"`
	Code        string    `gorm:"size:6;not null" json:"code"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	IsUsed      bool      `gorm:"default:false"`
	Description string    `gorm:"size:255" json:"description,omitempty"` // EMAIL_VERIFY, PHONE_VERIFY, PASSWORD_RESET
	IsDeleted   bool      `gorm:"default:false"`
}

// IsExpired reports whether the OTP is past its expiry time.
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}
