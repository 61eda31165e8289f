package utils

import (
	"log"
	"time"

	"flms/database"
	"flms/models"
	courseModels "flms/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeMaintenanceScheduler starts the background maintenance jobs:
// hourly purge of expired OTP rows and a nightly sweep that recomputes all
// course counters as a safety net against drift.
func InitializeMaintenanceScheduler() {
	log.Println("[MAINTENANCE] Initializing maintenance scheduler...")

	c := cron.New()

	c.AddFunc("0 * * * *", func() {
		PurgeExpiredOTPs()
	})

	// Nightly at 3 AM
	c.AddFunc("0 3 * * *", func() {
		ReconcileCourseTotals()
	})

	c.Start()
	log.Println("[MAINTENANCE] Maintenance scheduler started")
}

// PurgeExpiredOTPs removes OTP rows past expiry or already consumed.
func PurgeExpiredOTPs() {
	db := database.Database.Db

	result := db.Unscoped().
		Where("expires_at < ? OR is_used = ?", time.Now(), true).
		Delete(&models.OTP{})
	if result.Error != nil {
		log.Printf("[MAINTENANCE] Error purging OTPs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[MAINTENANCE] Purged %d expired OTP rows", result.RowsAffected)
	}
}

// ReconcileCourseTotals recomputes the denormalized chapter and quiz counters
// for every live course. Mutating endpoints keep these in sync already; this
// sweep only repairs drift from out-of-band writes.
func ReconcileCourseTotals() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		log.Printf("[MAINTENANCE] Error fetching courses: %v", err)
		return
	}

	for _, c := range courses {
		tx := db.Begin()

		var modules []courseModels.Module
		if err := tx.Where("course_id = ? AND is_deleted = ?", c.ID, false).Find(&modules).Error; err != nil {
			tx.Rollback()
			log.Printf("[MAINTENANCE] Error fetching modules for course %d: %v", c.ID, err)
			continue
		}

		failed := false
		for _, m := range modules {
			if err := courseModels.RecalcModuleChapters(tx, m.ID); err != nil {
				log.Printf("[MAINTENANCE] Error recomputing module %d: %v", m.ID, err)
				failed = true
				break
			}
		}
		if !failed {
			if err := courseModels.RecalcCourseQuizzes(tx, c.ID); err != nil {
				log.Printf("[MAINTENANCE] Error recomputing quizzes for course %d: %v", c.ID, err)
				failed = true
			}
		}

		if failed {
			tx.Rollback()
			continue
		}
		tx.Commit()
	}
}
