package models

import "time"

type TestSession struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	CandidateID   uint `json:"candidate_id" gorm:"not null;index;uniqueIndex:idx_candidate_set_completed,where:is_completed"`
	QuestionSetID uint `json:"question_set_id" gorm:"not null;index;uniqueIndex:idx_candidate_set_completed,where:is_completed"`

	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	// IsCompleted participates in the partial unique index above, which closes
	// the start-check-and-create race at the storage boundary: at most one
	// completed session can exist per (candidate, question set) pair.
	IsCompleted bool `json:"is_completed" gorm:"not null;default:false;index;uniqueIndex:idx_candidate_set_completed,where:is_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Candidate   User              `json:"candidate,omitempty" gorm:"foreignKey:CandidateID"`
	QuestionSet QuestionSet       `json:"question_set,omitempty" gorm:"foreignKey:QuestionSetID"`
	Answers     []SubmittedAnswer `json:"answers,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

type SubmittedAnswer struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	SessionID  uint `json:"session_id" gorm:"not null;index"`
	QuestionID uint `json:"question_id" gorm:"not null;index"`

	// RawText may be empty, meaning the question was left unanswered.
	// Answers are inserted in a batch at submission time and never mutated.
	RawText string `json:"raw_text" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Session  TestSession `json:"-" gorm:"foreignKey:SessionID"`
	Question Question    `json:"-" gorm:"foreignKey:QuestionID"`
}
