package course

import (
	"fmt"

	"gorm.io/gorm"
)

// The denormalized counters on Course and Module are recomputed from live
// child rows by the helpers below. Callers invoke them inside the same
// transaction as the mutation that made them stale, so a failed recompute
// rolls the mutation back with it.

// RecalcModuleChapters recounts the chapters under a module and refreshes
// both the module's and the owning course's chapter totals.
func RecalcModuleChapters(tx *gorm.DB, moduleID uint) error {
	var module Module
	if err := tx.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return fmt.Errorf("module %d not found: %w", moduleID, err)
	}

	var count int64
	if err := tx.Model(&Chapter{}).Where("module_id = ? AND is_deleted = ?", moduleID, false).Count(&count).Error; err != nil {
		return err
	}

	if err := tx.Model(&Module{}).Where("id = ?", moduleID).Update("total_chapters", count).Error; err != nil {
		return err
	}

	return RecalcCourseChapters(tx, module.CourseID)
}

// RecalcCourseChapters refreshes course.total_chapters as the sum of its
// modules' chapter totals.
func RecalcCourseChapters(tx *gorm.DB, courseID uint) error {
	if err := ensureCourse(tx, courseID); err != nil {
		return err
	}

	var total int64
	err := tx.Model(&Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(SUM(total_chapters), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}

	return tx.Model(&Course{}).Where("id = ?", courseID).Update("total_chapters", total).Error
}

// RecalcCourseQuizzes refreshes course.total_quizzes as the live quiz count
// across the whole module/chapter tree.
func RecalcCourseQuizzes(tx *gorm.DB, courseID uint) error {
	if err := ensureCourse(tx, courseID); err != nil {
		return err
	}

	var total int64
	err := tx.Model(&Quiz{}).
		Joins("JOIN chapters ON chapters.id = quizzes.chapter_id").
		Joins("JOIN modules ON modules.id = chapters.module_id").
		Where("modules.course_id = ? AND quizzes.is_deleted = ? AND chapters.is_deleted = ? AND modules.is_deleted = ?",
			courseID, false, false, false).
		Count(&total).Error
	if err != nil {
		return err
	}

	return tx.Model(&Course{}).Where("id = ?", courseID).Update("total_quizzes", total).Error
}

// CourseIDForChapter walks a chapter up to its owning course.
func CourseIDForChapter(tx *gorm.DB, chapterID uint) (uint, error) {
	var chapter Chapter
	if err := tx.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return 0, fmt.Errorf("chapter %d not found: %w", chapterID, err)
	}
	var module Module
	if err := tx.Where("id = ? AND is_deleted = ?", chapter.ModuleID, false).First(&module).Error; err != nil {
		return 0, fmt.Errorf("module %d not found: %w", chapter.ModuleID, err)
	}
	return module.CourseID, nil
}

func ensureCourse(tx *gorm.DB, courseID uint) error {
	var n int64
	if err := tx.Model(&Course{}).Where("id = ? AND is_deleted = ?", courseID, false).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("course %d not found", courseID)
	}
	return nil
}
