package course

import "gorm.io/gorm"

// The catalog tree is removed bottom-up with an explicit post-order walk
// instead of relying on database cascade rules, so media files can be
// released before their owning rows disappear. releaseMedia is best-effort;
// row deletion errors abort the walk.

// DeleteChapterTree removes one chapter and its quizzes.
func DeleteChapterTree(tx *gorm.DB, chapterID uint, releaseMedia func(string)) error {
	var chapter Chapter
	if err := tx.Where("id = ?", chapterID).First(&chapter).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("chapter_id = ?", chapterID).Delete(&Quiz{}).Error; err != nil {
		return err
	}
	if releaseMedia != nil && chapter.VideoPath != "" {
		releaseMedia(chapter.VideoPath)
	}
	return tx.Unscoped().Delete(&Chapter{}, chapterID).Error
}

// DeleteModuleTree removes one module with all its chapters and quizzes.
func DeleteModuleTree(tx *gorm.DB, moduleID uint, releaseMedia func(string)) error {
	var chapters []Chapter
	if err := tx.Where("module_id = ?", moduleID).Find(&chapters).Error; err != nil {
		return err
	}
	for _, chapter := range chapters {
		if err := DeleteChapterTree(tx, chapter.ID, releaseMedia); err != nil {
			return err
		}
	}
	return tx.Unscoped().Delete(&Module{}, moduleID).Error
}

// DeleteCourseTree removes a course and everything under it.
func DeleteCourseTree(tx *gorm.DB, courseID uint, releaseMedia func(string)) error {
	var c Course
	if err := tx.Where("id = ?", courseID).First(&c).Error; err != nil {
		return err
	}

	var modules []Module
	if err := tx.Where("course_id = ?", courseID).Find(&modules).Error; err != nil {
		return err
	}
	for _, module := range modules {
		if err := DeleteModuleTree(tx, module.ID, releaseMedia); err != nil {
			return err
		}
	}

	if releaseMedia != nil && c.ThumbnailPath != "" {
		releaseMedia(c.ThumbnailPath)
	}
	return tx.Unscoped().Delete(&Course{}, courseID).Error
}

// DeleteMockTestTree removes a mock test and its questions. Stored attempts
// are kept as historical records.
func DeleteMockTestTree(tx *gorm.DB, mockTestID uint, releaseMedia func(string)) error {
	var mt MockTest
	if err := tx.Where("id = ?", mockTestID).First(&mt).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("mock_test_id = ?", mockTestID).Delete(&MockTestQuestion{}).Error; err != nil {
		return err
	}
	if releaseMedia != nil && mt.ImagePath != "" {
		releaseMedia(mt.ImagePath)
	}
	return tx.Unscoped().Delete(&MockTest{}, mockTestID).Error
}
