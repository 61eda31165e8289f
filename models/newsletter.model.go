package models

import "gorm.io/gorm"

type NewsletterSubscriber struct {
	gorm.Model
	Email     string `gorm:"unique;not null" json:"email"`
	IsDeleted bool   `gorm:"default:false"`
}
