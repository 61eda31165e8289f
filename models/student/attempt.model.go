package student

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizAttempt records a learner's single answer to a chapter quiz.
// The unique index enforces the one-attempt-ever rule.
type QuizAttempt struct {
	gorm.Model
	UserID         uint `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_user_quiz"`
	QuizID         uint `json:"quiz_id" gorm:"not null;uniqueIndex:idx_attempt_user_quiz"`
	SelectedOption int  `json:"selected_option"` // 1..4
	IsCorrect      bool `json:"is_correct"`
}

// MockTestAnswer is one entry in a mock-test submission.
type MockTestAnswer struct {
	QuizID         uint `json:"quiz_id"`
	SelectedOption int  `json:"selected_option"`
}

// MockTestAttempt is the immutable record of a timed mock-test submission.
// One per (user, mock test), enforced by the unique index.
type MockTestAttempt struct {
	gorm.Model
	UserID         uint                                `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_user_mock_test"`
	MockTestID     uint                                `json:"mock_test_id" gorm:"not null;uniqueIndex:idx_attempt_user_mock_test"`
	Answers        datatypes.JSONSlice[MockTestAnswer] `json:"answers"`
	Score          int                                 `json:"score"`
	TotalQuestions int                                 `json:"total_questions"`
	StartTime      time.Time                           `json:"start_time"`
	EndTime        time.Time                           `json:"end_time"`
}
