package course

import "gorm.io/gorm"

// MockTest is a standalone timed assessment, separate from chapter quizzes.
// DurationMinutes of 0 means the test is untimed.
type MockTest struct {
	gorm.Model
	Heading         string `json:"heading"`
	Description     string `json:"description" gorm:"type:text"`
	ImagePath       string `json:"image_path"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	IsDeleted       bool   `gorm:"default:false"`
}

// MockTestQuestion is a four-option question belonging to a mock test.
type MockTestQuestion struct {
	gorm.Model
	MockTestID    uint   `json:"mock_test_id" gorm:"index;not null"`
	Question      string `json:"question" gorm:"type:text"`
	Option1       string `json:"option_1"`
	Option2       string `json:"option_2"`
	Option3       string `json:"option_3"`
	Option4       string `json:"option_4"`
	CorrectOption int    `json:"correct_option"` // 1..4
	IsDeleted     bool   `gorm:"default:false"`
}

// OptionText returns the text of option n (1..4), or "" when out of range.
func (q *MockTestQuestion) OptionText(n int) string {
	switch n {
	case 1:
		return q.Option1
	case 2:
		return q.Option2
	case 3:
		return q.Option3
	case 4:
		return q.Option4
	}
	return ""
}
