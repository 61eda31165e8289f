package student

import (
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Progress status buckets for a purchased course.
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

// Weight split between video chapters and quizzes in the progress percentage.
const (
	chapterWeightShare = 0.7
	quizWeightShare    = 0.3
)

// CourseProgress tracks one learner's completion state for one course.
// Progress is derived from the two id sets, never accepted from the client.
type CourseProgress struct {
	gorm.Model
	UserID            uint                      `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CourseID          uint                      `json:"course_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CompletedChapters datatypes.JSONSlice[uint] `json:"completed_chapters"`
	CompletedQuizzes  datatypes.JSONSlice[uint] `json:"completed_quizzes"`
	Progress          float64                   `json:"progress" gorm:"default:0"`
	LastActivityAt    time.Time                 `json:"last_activity_at"`
}

// Recalculate dedupes the completed sets and rederives the weighted
// percentage from the course's current chapter and quiz totals.
func (p *CourseProgress) Recalculate(totalChapters, totalQuizzes int) {
	p.CompletedChapters = dedupe(p.CompletedChapters)
	p.CompletedQuizzes = dedupe(p.CompletedQuizzes)

	if totalChapters+totalQuizzes == 0 {
		p.Progress = 0.0
		return
	}

	chapterWeight := chapterWeightShare / math.Max(float64(totalChapters), 1)
	quizWeight := quizWeightShare / math.Max(float64(totalQuizzes), 1)

	raw := 100 * (float64(len(p.CompletedChapters))*chapterWeight +
		float64(len(p.CompletedQuizzes))*quizWeight)
	p.Progress = math.Round(raw*100) / 100
}

// MarkChapter adds or removes a chapter id from the completed set.
// Re-adding a present id or removing an absent one is a no-op.
func (p *CourseProgress) MarkChapter(chapterID uint, completed bool) {
	p.CompletedChapters = toggleID(p.CompletedChapters, chapterID, completed)
}

// MarkQuiz adds or removes a quiz id from the completed set.
func (p *CourseProgress) MarkQuiz(quizID uint, completed bool) {
	p.CompletedQuizzes = toggleID(p.CompletedQuizzes, quizID, completed)
}

// Status buckets the percentage: >= 99.99 completed, > 0 in progress,
// otherwise not started.
func (p *CourseProgress) Status() string {
	switch {
	case p.Progress >= 99.99:
		return ProgressCompleted
	case p.Progress > 0:
		return ProgressInProgress
	default:
		return ProgressNotStarted
	}
}

func toggleID(ids []uint, id uint, present bool) []uint {
	idx := -1
	for i, existing := range ids {
		if existing == id {
			idx = i
			break
		}
	}
	if present && idx < 0 {
		return append(ids, id)
	}
	if !present && idx >= 0 {
		return append(ids[:idx], ids[idx+1:]...)
	}
	return ids
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
