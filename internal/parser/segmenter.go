package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Segment is one numbered block of extracted document text.
type Segment struct {
	Ordinal int
	Body    string
}

// markerRe matches a line opening a new segment: "<integer>. <text>".
var markerRe = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)

// Split scans raw extracted text line by line and groups it into numbered
// segments. A line starting with "<integer>. " opens a new segment; following
// lines are appended to its body until the next marker. Lines before the
// first marker are discarded. Duplicate ordinals are last-write-wins; the
// number of overwritten segments is returned so callers can surface it.
// Empty input yields an empty slice.
func Split(raw string) ([]Segment, int) {
	var (
		segments    []Segment
		index       = make(map[int]int)
		overwritten int
		current     = -1
		body        []string
	)

	flush := func() {
		if current < 0 {
			return
		}
		seg := Segment{Ordinal: current, Body: strings.TrimSpace(strings.Join(body, "\n"))}
		if pos, ok := index[current]; ok {
			segments[pos] = seg
			overwritten++
		} else {
			index[current] = len(segments)
			segments = append(segments, seg)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		m := markerRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			ordinal, err := strconv.Atoi(m[1])
			if err == nil && ordinal > 0 {
				flush()
				current = ordinal
				body = body[:0]
				if m[2] != "" {
					body = append(body, m[2])
				}
				continue
			}
		}
		if current >= 0 {
			body = append(body, line)
		}
	}
	flush()

	return segments, overwritten
}
