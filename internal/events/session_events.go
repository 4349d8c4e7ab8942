package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of published events
type EventType string

const (
	// Session lifecycle events
	EventSessionStarted   EventType = "session.started"
	EventSessionSubmitted EventType = "session.submitted"

	// Question set events
	EventQuestionSetCreated EventType = "questionset.created"
)

// Event is the base structure for all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type SessionStartedEvent struct {
	SessionID     uint      `json:"session_id"`
	CandidateID   uint      `json:"candidate_id"`
	QuestionSetID uint      `json:"question_set_id"`
	StartedAt     time.Time `json:"started_at"`
}

type SessionSubmittedEvent struct {
	SessionID     uint      `json:"session_id"`
	CandidateID   uint      `json:"candidate_id"`
	QuestionSetID uint      `json:"question_set_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
	CorrectCount  int       `json:"correct_count"`
	Total         int       `json:"total"`
	Percentage    float64   `json:"percentage"`
	Passed        bool      `json:"passed"`
}

type QuestionSetCreatedEvent struct {
	QuestionSetID uint   `json:"question_set_id"`
	Title         string `json:"title"`
	CreatedByID   uint   `json:"created_by_id"`
}

// Event factory functions

func NewSessionStartedEvent(sessionID, candidateID, setID uint, startedAt time.Time) *Event {
	return newEvent(EventSessionStarted, SessionStartedEvent{
		SessionID:     sessionID,
		CandidateID:   candidateID,
		QuestionSetID: setID,
		StartedAt:     startedAt,
	})
}

func NewSessionSubmittedEvent(sessionID, candidateID, setID uint, submittedAt time.Time, correct, total int, percentage float64, passed bool) *Event {
	return newEvent(EventSessionSubmitted, SessionSubmittedEvent{
		SessionID:     sessionID,
		CandidateID:   candidateID,
		QuestionSetID: setID,
		SubmittedAt:   submittedAt,
		CorrectCount:  correct,
		Total:         total,
		Percentage:    percentage,
		Passed:        passed,
	})
}

func NewQuestionSetCreatedEvent(setID uint, title string, createdByID uint) *Event {
	return newEvent(EventQuestionSetCreated, QuestionSetCreatedEvent{
		QuestionSetID: setID,
		Title:         title,
		CreatedByID:   createdByID,
	})
}

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "interview-service",
		Version:   "1.0",
		Data:      data,
	}
}
