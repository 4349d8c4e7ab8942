package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type QuestionKind string

const (
	QuestionPlain          QuestionKind = "plain"
	QuestionMultipleChoice QuestionKind = "multiple_choice"
)

type Question struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	QuestionSetID uint `json:"question_set_id" gorm:"not null;index;uniqueIndex:idx_set_ordinal"`

	// Ordinal is the question number as it appeared in the uploaded document.
	// It joins questions with their answer key and is unique within a set.
	Ordinal int    `json:"ordinal" gorm:"not null;uniqueIndex:idx_set_ordinal"`
	Text    string `json:"text" gorm:"type:text;not null"`

	// Prompt holds the portion of the body before the first option line for
	// multiple choice questions. Display only, grading uses Text.
	Prompt        string       `json:"prompt,omitempty" gorm:"type:text"`
	CorrectAnswer *string      `json:"correct_answer,omitempty" gorm:"type:text"`
	Kind          QuestionKind `json:"kind" gorm:"not null;default:plain;size:20"`

	// Options maps option letters (A-D) to option text, null for plain questions.
	Options datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	QuestionSet QuestionSet `json:"-" gorm:"foreignKey:QuestionSetID"`
}

// OptionMap decodes the stored option set. Returns nil for plain questions.
func (q *Question) OptionMap() map[string]string {
	if len(q.Options) == 0 {
		return nil
	}
	var opts map[string]string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}
