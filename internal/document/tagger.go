package document

import (
	"fmt"
	"regexp"
	"strings"
)

const BoundaryMarker = "[[Q_BOUNDARY]]"

// questionStart matches a line-leading label such as "12.", "Q.3)" or "7 "
var questionStart = regexp.MustCompile(`(?m)^[ \t]*(?:Q\.?[ \t]*)?(\d{1,3})[.) ]`)

var fullMarker = regexp.MustCompile(regexp.QuoteMeta(BoundaryMarker) + `\[\[SEQ:\d+\]\]`)

func sequenceMarker(n int) string {
	return fmt.Sprintf("[[SEQ:%d]]", n)
}

// Tagged is text with a boundary marker and a sequence marker inserted before
// every detected question start.
type Tagged struct {
	Text string

	// Labels[i] is the printed label of the question with sequence index i+1
	Labels []string
}

// Tag marks each question start. Sequence indices run 1, 2, 3... in document
// order no matter how the printed labels repeat or restart.
func Tag(text string) Tagged {
	matches := questionStart.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return Tagged{Text: text}
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(matches)*len(BoundaryMarker+"[[SEQ:000]] "))

	labels := make([]string, 0, len(matches))
	prev := 0
	for i, m := range matches {
		sb.WriteString(text[prev:m[0]])
		sb.WriteString(BoundaryMarker)
		sb.WriteString(sequenceMarker(i + 1))
		sb.WriteByte(' ')
		labels = append(labels, text[m[2]:m[3]])
		prev = m[0]
	}
	sb.WriteString(text[prev:])

	return Tagged{Text: sb.String(), Labels: labels}
}

// Count is the number of detected question starts
func (t Tagged) Count() int {
	return len(t.Labels)
}

// DistinctLabels returns the printed labels without repeats, in first-seen order
func (t Tagged) DistinctLabels() []string {
	seen := make(map[string]bool, len(t.Labels))
	out := make([]string, 0, len(t.Labels))
	for _, l := range t.Labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// Truncate cuts Text to at most maxRunes runes and drops the labels whose
// markers were cut off, so FindAnchor only sees what survives.
func (t Tagged) Truncate(maxRunes int) Tagged {
	if len(t.Text) <= maxRunes {
		return t
	}
	cut := len(t.Text)
	count := 0
	for i := range t.Text {
		if count == maxRunes {
			cut = i
			break
		}
		count++
	}
	if cut == len(t.Text) {
		return t
	}

	text := t.Text[:cut]
	kept := min(len(fullMarker.FindAllStringIndex(text, -1)), len(t.Labels))
	return Tagged{Text: text, Labels: t.Labels[:kept]}
}

// AnchorNotFoundError reports a requested sequence index with no marker
type AnchorNotFoundError struct {
	Requested      int
	DetectedLabels []string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("question %d not found in document (detected labels: %s)",
		e.Requested, strings.Join(e.DetectedLabels, ", "))
}

// FindAnchor returns the byte offset of the first marker for sequence index start.
// There is no nearest-match fallback.
func (t Tagged) FindAnchor(start int) (int, error) {
	if start >= 1 {
		if idx := strings.Index(t.Text, BoundaryMarker+sequenceMarker(start)); idx >= 0 {
			return idx, nil
		}
	}
	return -1, &AnchorNotFoundError{Requested: start, DetectedLabels: t.DistinctLabels()}
}
