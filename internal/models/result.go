package models

import (
	"time"

	"gorm.io/datatypes"
)

// Result is a stored snapshot of a session's score report, persisted at
// submit time for listing and export. Grading itself never reads this row,
// a report is always recomputable from the session's answers.
type Result struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	SessionID uint `json:"session_id" gorm:"not null;uniqueIndex"`

	CorrectCount   int     `json:"correct_count" gorm:"not null"`
	TotalQuestions int     `json:"total_questions" gorm:"not null"`
	Percentage     float64 `json:"percentage" gorm:"not null"`
	Passed         bool    `json:"passed" gorm:"not null;index"`

	// Details holds the serialized per-question answer details.
	Details datatypes.JSON `json:"details,omitempty" gorm:"type:jsonb"`

	GradedAt  time.Time `json:"graded_at"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Session TestSession `json:"session,omitempty" gorm:"foreignKey:SessionID"`
}
