package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuestions_Plain(t *testing.T) {
	questions := BuildQuestions([]Segment{{Ordinal: 1, Body: "What is 2+2?"}})

	assert.Len(t, questions, 1)
	assert.False(t, questions[0].IsMultipleChoice())
	assert.Equal(t, "What is 2+2?", questions[0].Text)
	assert.Empty(t, questions[0].Prompt)
	assert.Nil(t, questions[0].Options)
}

func TestBuildQuestions_MultipleChoice(t *testing.T) {
	questions := BuildQuestions([]Segment{{Ordinal: 1, Body: "Pick one\nA. Red\nB. Blue"}})

	assert.Len(t, questions, 1)
	q := questions[0]
	assert.True(t, q.IsMultipleChoice())
	assert.Equal(t, "Pick one", q.Prompt)
	assert.Equal(t, map[string]string{"A": "Red", "B": "Blue"}, q.Options)
	// Full body stays intact for grading and display.
	assert.Equal(t, "Pick one\nA. Red\nB. Blue", q.Text)
}

func TestBuildQuestions_MultilinePrompt(t *testing.T) {
	body := "Given the snippet below\nchoose the output\nA. 1\nB. 2\nC. 3\nD. 4"
	questions := BuildQuestions([]Segment{{Ordinal: 4, Body: body}})

	q := questions[0]
	assert.Equal(t, "Given the snippet below\nchoose the output", q.Prompt)
	assert.Len(t, q.Options, 4)
	assert.Equal(t, "4", q.Options["D"])
}

func TestBuildQuestions_LetterOutsideRangeIsNotOption(t *testing.T) {
	questions := BuildQuestions([]Segment{{Ordinal: 1, Body: "Rate it\nE. Excellent"}})

	assert.False(t, questions[0].IsMultipleChoice())
}
