package services

import (
	"math"
	"sort"
	"strings"

	"github.com/hirelens/interview-service/internal/models"
)

const (
	// SimilarityThreshold is the minimum Levenshtein similarity for a
	// free-text answer to count as correct.
	SimilarityThreshold = 0.6

	// PassingPercentage is the minimum score percentage to pass a session.
	PassingPercentage = 50.0
)

// matchAnswer compares a candidate's raw answer against a question's
// correct answer. Multiple-choice questions match on the option letter
// only and report no similarity; free-text questions use Levenshtein
// similarity against the threshold. An empty candidate answer is never
// correct. A nil correct answer is compared as the empty string.
func matchAnswer(q *models.Question, raw string) (bool, *float64) {
	correct := ""
	if q.CorrectAnswer != nil {
		correct = *q.CorrectAnswer
	}

	if q.Kind == models.QuestionMultipleChoice {
		candidate := strings.ToUpper(strings.TrimSpace(raw))
		letter := ""
		if trimmed := strings.TrimSpace(correct); trimmed != "" {
			letter = strings.ToUpper(trimmed[:1])
		}
		return candidate != "" && candidate == letter, nil
	}

	if strings.TrimSpace(raw) == "" {
		zero := 0.0
		return false, &zero
	}

	similarity := calculateStringSimilarity(raw, correct)
	return similarity >= SimilarityThreshold, &similarity
}

func calculateStringSimilarity(s1, s2 string) float64 {
	s1 = strings.ToLower(strings.TrimSpace(s1))
	s2 = strings.ToLower(strings.TrimSpace(s2))

	if s1 == s2 {
		return 1.0
	}

	maxLen := math.Max(float64(len(s1)), float64(len(s2)))
	if maxLen == 0 {
		return 1.0
	}

	distance := float64(levenshteinDistance(s1, s2))
	return 1.0 - (distance / maxLen)
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

// buildScoreReport grades every question of a session against the
// submitted answers. Questions with no submitted answer are compared
// against the empty string. Details are ordered by ordinal.
func buildScoreReport(sessionID uint, questions []*models.Question, answers map[uint]string) *ScoreReport {
	sorted := make([]*models.Question, len(questions))
	copy(sorted, questions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Ordinal < sorted[j].Ordinal
	})

	report := &ScoreReport{
		SessionID: sessionID,
		Total:     len(sorted),
		Details:   make([]AnswerDetail, 0, len(sorted)),
	}

	for _, q := range sorted {
		raw := answers[q.ID]
		isCorrect, similarity := matchAnswer(q, raw)
		if isCorrect {
			report.CorrectCount++
		}

		correct := ""
		if q.CorrectAnswer != nil {
			correct = *q.CorrectAnswer
		}

		report.Details = append(report.Details, AnswerDetail{
			QuestionID:      q.ID,
			Ordinal:         q.Ordinal,
			QuestionText:    q.Text,
			CandidateAnswer: raw,
			CorrectAnswer:   correct,
			IsCorrect:       isCorrect,
			Similarity:      similarity,
		})
	}

	if report.Total > 0 {
		report.Percentage = 100.0 * float64(report.CorrectCount) / float64(report.Total)
	}
	report.Passed = report.Percentage >= PassingPercentage

	return report
}
