package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit_Empty(t *testing.T) {
	segments, overwritten := Split("")
	assert.Empty(t, segments)
	assert.Equal(t, 0, overwritten)
}

func TestSplit_NoMarkers(t *testing.T) {
	segments, overwritten := Split("some preamble\nwithout any numbering\n")
	assert.Empty(t, segments)
	assert.Equal(t, 0, overwritten)
}

func TestSplit_BasicQuestions(t *testing.T) {
	segments, overwritten := Split("1. What is 2+2?\n2. Capital of France?\n")

	assert.Equal(t, 0, overwritten)
	assert.Len(t, segments, 2)
	assert.Equal(t, 1, segments[0].Ordinal)
	assert.Equal(t, "What is 2+2?", segments[0].Body)
	assert.Equal(t, 2, segments[1].Ordinal)
	assert.Equal(t, "Capital of France?", segments[1].Body)
}

func TestSplit_MultilineBody(t *testing.T) {
	raw := "Instructions: answer everything.\n1. Pick one\nA. Red\nB. Blue\n2. Explain GC\nin two sentences\n"
	segments, _ := Split(raw)

	assert.Len(t, segments, 2)
	assert.Equal(t, "Pick one\nA. Red\nB. Blue", segments[0].Body)
	assert.Equal(t, "Explain GC\nin two sentences", segments[1].Body)
}

func TestSplit_DiscardsPreamble(t *testing.T) {
	segments, _ := Split("Page 1 of 3\nInterview Questions\n1. First\n")

	assert.Len(t, segments, 1)
	assert.Equal(t, "First", segments[0].Body)
}

func TestSplit_NonContiguousOrdinals(t *testing.T) {
	segments, overwritten := Split("3. third\n7. seventh\n")

	assert.Equal(t, 0, overwritten)
	assert.Len(t, segments, 2)
	assert.Equal(t, 3, segments[0].Ordinal)
	assert.Equal(t, 7, segments[1].Ordinal)
}

func TestSplit_DuplicateOrdinalLastWriteWins(t *testing.T) {
	segments, overwritten := Split("1. original\n2. middle\n1. replacement\n")

	assert.Equal(t, 1, overwritten)
	assert.Len(t, segments, 2)
	assert.Equal(t, 1, segments[0].Ordinal)
	assert.Equal(t, "replacement", segments[0].Body)
	assert.Equal(t, "middle", segments[1].Body)
}

func TestSplit_AnswerKeyShape(t *testing.T) {
	segments, _ := Split("1. 4\n2. Paris\n")

	assert.Len(t, segments, 2)
	assert.Equal(t, "4", segments[0].Body)
	assert.Equal(t, "Paris", segments[1].Body)
}
