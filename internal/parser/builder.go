package parser

import (
	"regexp"
	"strings"
)

// ParsedQuestion is a segment classified as plain or multiple choice.
type ParsedQuestion struct {
	Ordinal int
	Text    string
	// Prompt is the body before the first option line. Empty for plain questions.
	Prompt  string
	Options map[string]string
}

// optionRe matches a multiple choice option line: "<letter A-D>. <text>".
var optionRe = regexp.MustCompile(`^([A-D])\.\s*(.+)$`)

// IsMultipleChoice reports whether the question carries a detected option set.
func (q ParsedQuestion) IsMultipleChoice() bool {
	return len(q.Options) > 0
}

// BuildQuestions classifies each segment, detecting option lines so that
// downstream grading can take the letter-match branch explicitly instead of
// sniffing the text at comparison time.
func BuildQuestions(segments []Segment) []ParsedQuestion {
	questions := make([]ParsedQuestion, 0, len(segments))
	for _, seg := range segments {
		q := ParsedQuestion{Ordinal: seg.Ordinal, Text: seg.Body}
		q.Prompt, q.Options = detectOptions(seg.Body)
		questions = append(questions, q)
	}
	return questions
}

// detectOptions scans the body's lines for "A. ..." style options. When at
// least one is found it returns the prompt (lines before the first option)
// and the letter-to-text mapping; otherwise both results are zero values.
func detectOptions(body string) (string, map[string]string) {
	var (
		options map[string]string
		prompt  []string
	)

	for _, line := range strings.Split(body, "\n") {
		m := optionRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			if options == nil {
				options = make(map[string]string)
			}
			options[m[1]] = strings.TrimSpace(m[2])
			continue
		}
		if options == nil {
			prompt = append(prompt, line)
		}
	}

	if options == nil {
		return "", nil
	}
	return strings.TrimSpace(strings.Join(prompt, "\n")), options
}
