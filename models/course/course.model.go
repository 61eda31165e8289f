package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is a sellable catalog entry. TotalChapters and TotalQuizzes are
// denormalized counters maintained by the recompute helpers in aggregates.go.
type Course struct {
	gorm.Model
	Name             string                          `json:"name"`
	Description      string                          `json:"description" gorm:"type:text"`
	Category         string                          `json:"category"`
	AuthorName       string                          `json:"author_name"`
	ThumbnailPath    string                          `json:"thumbnail_path"`
	PriceINR         float64                         `json:"price_inr"`
	OfferPrice       *float64                        `json:"offer_price"`
	Recommended      bool                            `json:"recommended" gorm:"default:false"`
	Position         int                             `json:"position" gorm:"default:0"`
	WhatYouWillLearn datatypes.JSONSlice[string]     `json:"what_you_will_learn"`
	TotalChapters    int                             `json:"total_chapters" gorm:"default:0"`
	TotalQuizzes     int                             `json:"total_quizzes" gorm:"default:0"`
	IsDeleted        bool                            `gorm:"default:false"`
}

// EffectivePrice is the amount a buyer actually pays: the offer price when
// one is set, otherwise the list price.
func (c *Course) EffectivePrice() float64 {
	if c.OfferPrice != nil {
		return *c.OfferPrice
	}
	return c.PriceINR
}

// Module is an ordered section of a course. TotalChapters mirrors the live
// chapter count under it.
type Module struct {
	gorm.Model
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	ModuleName    string `json:"module_name"`
	Position      int    `json:"position" gorm:"default:0"`
	TotalChapters int    `json:"total_chapters" gorm:"default:0"`
	IsDeleted     bool   `gorm:"default:false"`
}

// Chapter is a single video lesson inside a module.
type Chapter struct {
	gorm.Model
	ModuleID           uint   `json:"module_id" gorm:"index;not null"`
	ChapterName        string `json:"chapter_name"`
	ChapterDescription string `json:"chapter_description" gorm:"type:text"`
	VideoPath          string `json:"video_path"`
	IsDeleted          bool   `gorm:"default:false"`
}

// Quiz is a single four-option question attached to a chapter.
type Quiz struct {
	gorm.Model
	ChapterID     uint   `json:"chapter_id" gorm:"index;not null"`
	Question      string `json:"question" gorm:"type:text"`
	Option1       string `json:"option_1"`
	Option2       string `json:"option_2"`
	Option3       string `json:"option_3"`
	Option4       string `json:"option_4"`
	CorrectOption int    `json:"correct_option"` // 1..4
	IsDeleted     bool   `gorm:"default:false"`
}

// OptionText returns the text of option n (1..4), or "" when out of range.
func (q *Quiz) OptionText(n int) string {
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
