package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/interview-service/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCalculateStringSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		s1, s2   string
		expected float64
	}{
		{"exact match", "Paris", "Paris", 1.0},
		{"case insensitive", "PARIS", "paris", 1.0},
		{"whitespace trimmed", "  Paris  ", "Paris", 1.0},
		{"both empty", "", "", 1.0},
		{"completely different", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, calculateStringSimilarity(tt.s1, tt.s2), 0.0001)
		})
	}
}

func TestCalculateStringSimilarity_CloserIsHigher(t *testing.T) {
	target := "photosynthesis"
	near := calculateStringSimilarity("photosinthesis", target)
	far := calculateStringSimilarity("respiration", target)
	assert.Greater(t, near, far)
	assert.GreaterOrEqual(t, near, SimilarityThreshold)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("abc", "abc"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 3, levenshteinDistance("abc", ""))
	assert.Equal(t, 1, levenshteinDistance("kitten", "mitten"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestMatchAnswer_FreeText(t *testing.T) {
	q := &models.Question{Kind: models.QuestionPlain, CorrectAnswer: strPtr("Paris")}

	correct, sim := matchAnswer(q, "paris")
	assert.True(t, correct)
	require.NotNil(t, sim)
	assert.InDelta(t, 1.0, *sim, 0.0001)

	correct, sim = matchAnswer(q, "London")
	assert.False(t, correct)
	require.NotNil(t, sim)
}

func TestMatchAnswer_EmptyCandidateNeverCorrect(t *testing.T) {
	q := &models.Question{Kind: models.QuestionPlain, CorrectAnswer: strPtr("")}

	// Even against an empty correct answer an empty submission scores zero.
	correct, sim := matchAnswer(q, "")
	assert.False(t, correct)
	require.NotNil(t, sim)
	assert.Equal(t, 0.0, *sim)

	correct, _ = matchAnswer(q, "   ")
	assert.False(t, correct)
}

func TestMatchAnswer_MissingCorrectAnswer(t *testing.T) {
	q := &models.Question{Kind: models.QuestionPlain, CorrectAnswer: nil}

	correct, sim := matchAnswer(q, "anything")
	assert.False(t, correct)
	require.NotNil(t, sim)
	assert.Equal(t, 0.0, *sim)
}

func TestMatchAnswer_MultipleChoice(t *testing.T) {
	q := &models.Question{
		Kind:          models.QuestionMultipleChoice,
		CorrectAnswer: strPtr("B. Blue"),
	}

	tests := []struct {
		name     string
		answer   string
		expected bool
	}{
		{"exact letter", "B", true},
		{"lowercase letter", "b", true},
		{"letter with whitespace", " B ", true},
		{"wrong letter", "A", false},
		{"full option text rejected", "Blue", false},
		{"empty answer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, sim := matchAnswer(q, tt.answer)
			assert.Equal(t, tt.expected, correct)
			assert.Nil(t, sim)
		})
	}
}

func TestBuildScoreReport_OrderingAndScore(t *testing.T) {
	questions := []*models.Question{
		{ID: 3, Ordinal: 3, Text: "Q3", Kind: models.QuestionPlain, CorrectAnswer: strPtr("gamma")},
		{ID: 1, Ordinal: 1, Text: "Q1", Kind: models.QuestionPlain, CorrectAnswer: strPtr("alpha")},
		{ID: 2, Ordinal: 2, Text: "Q2", Kind: models.QuestionPlain, CorrectAnswer: strPtr("beta")},
	}
	answers := map[uint]string{
		1: "alpha",
		2: "wrong answer entirely",
		// question 3 unanswered
	}

	report := buildScoreReport(42, questions, answers)

	assert.Equal(t, uint(42), report.SessionID)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.CorrectCount)
	assert.InDelta(t, 33.3333, report.Percentage, 0.001)
	assert.False(t, report.Passed)

	require.Len(t, report.Details, 3)
	for i, d := range report.Details {
		assert.Equal(t, i+1, d.Ordinal)
	}
	assert.True(t, report.Details[0].IsCorrect)
	assert.False(t, report.Details[2].IsCorrect)
	assert.Equal(t, "", report.Details[2].CandidateAnswer)
}

func TestBuildScoreReport_PassBoundary(t *testing.T) {
	questions := []*models.Question{
		{ID: 1, Ordinal: 1, Kind: models.QuestionPlain, CorrectAnswer: strPtr("a")},
		{ID: 2, Ordinal: 2, Kind: models.QuestionPlain, CorrectAnswer: strPtr("b")},
	}

	// Exactly 50% passes.
	report := buildScoreReport(1, questions, map[uint]string{1: "a"})
	assert.InDelta(t, 50.0, report.Percentage, 0.0001)
	assert.True(t, report.Passed)

	report = buildScoreReport(1, questions, map[uint]string{})
	assert.Equal(t, 0.0, report.Percentage)
	assert.False(t, report.Passed)
}

func TestBuildScoreReport_NoQuestions(t *testing.T) {
	report := buildScoreReport(1, nil, nil)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0.0, report.Percentage)
	assert.False(t, report.Passed)
	assert.Empty(t, report.Details)
}

func TestGradingService_Grade(t *testing.T) {
	repo := newFakeRepository()
	logger := slog.Default()
	svc := NewGradingService(repo, logger)
	ctx := context.Background()

	set := &models.QuestionSet{Title: "Geography", IsActive: true}
	require.NoError(t, repo.QuestionSet().Create(ctx, nil, set))
	require.NoError(t, repo.Question().CreateBatch(ctx, nil, []*models.Question{
		{QuestionSetID: set.ID, Ordinal: 1, Text: "Capital of France?", Kind: models.QuestionPlain, CorrectAnswer: strPtr("Paris")},
		{QuestionSetID: set.ID, Ordinal: 2, Text: "Capital of Spain?", Kind: models.QuestionPlain, CorrectAnswer: strPtr("Madrid")},
	}))

	now := time.Now()
	session := &models.TestSession{CandidateID: 7, QuestionSetID: set.ID, StartedAt: now, IsCompleted: true, SubmittedAt: &now}
	require.NoError(t, repo.Session().Create(ctx, nil, session))
	require.NoError(t, repo.SubmittedAnswer().CreateBatch(ctx, nil, []*models.SubmittedAnswer{
		{SessionID: session.ID, QuestionID: 1, RawText: "paris"},
		{SessionID: session.ID, QuestionID: 2, RawText: "Barcelona"},
	}))

	report, err := svc.Grade(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.CorrectCount)
	assert.InDelta(t, 50.0, report.Percentage, 0.0001)
	assert.True(t, report.Passed)

	// Grading is idempotent.
	again, err := svc.Grade(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, report, again)
}

func TestGradingService_Grade_NotSubmitted(t *testing.T) {
	repo := newFakeRepository()
	svc := NewGradingService(repo, slog.Default())
	ctx := context.Background()

	session := &models.TestSession{CandidateID: 7, QuestionSetID: 1, StartedAt: time.Now()}
	require.NoError(t, repo.Session().Create(ctx, nil, session))

	_, err := svc.Grade(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotSubmitted)
}

func TestGradingService_Grade_NotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := NewGradingService(repo, slog.Default())

	_, err := svc.Grade(context.Background(), 999)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
