package models

import "time"

type QuestionSet struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:255"`
	IsActive    bool   `json:"is_active" gorm:"default:true;index"`
	CreatedByID uint   `json:"created_by_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CreatedBy User       `json:"-" gorm:"foreignKey:CreatedByID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuestionSetID;constraint:OnDelete:CASCADE"`
}

// QuestionCount is derived from the attached questions; it is only populated
// when the set was loaded with its questions.
func (qs *QuestionSet) QuestionCount() int {
	return len(qs.Questions)
}
