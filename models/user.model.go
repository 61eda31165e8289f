package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage     string `gorm:"default:''"`
	FullName         string `gorm:"default:''"`
	Email            string `gorm:"unique;not null"`
	Mobile           string `gorm:"default:''"`
	Role             string `gorm:"default:'STUDENT'"` // STUDENT, ADMIN
	Password         string `gorm:"not null"`
	Institution      string
	Location         string
	DOB              *time.Time `json:"dob"`
	IsMobileVerified bool       `gorm:"default:false"`
	IsEmailVerified  bool       `gorm:"default:false"`
	LastLogin        time.Time  `gorm:"default:NULL"`
	IsDeleted        bool       `gorm:"default:false"`
}
