package browser

import "strings"

// Query is the text typed in Search or FuzzyFind. Each mode owns its own.
type Query struct {
	text string
}

func (q Query) String() string {
	return q.text
}

// Empty reports whether nothing has been typed.
func (q Query) Empty() bool {
	return q.text == ""
}

// Append adds r at the end.
func (q *Query) Append(r rune) {
	q.text += string(r)
}

// Pop removes the last character, if any.
func (q *Query) Pop() {
	if q.text == "" {
		return
	}
	runes := []rune(q.text)
	q.text = string(runes[:len(runes)-1])
}

// DeleteWord drops everything from the last space onwards, or the whole
// text when there is no space.
func (q *Query) DeleteWord() {
	if i := strings.LastIndexByte(q.text, ' '); i >= 0 {
		q.text = q.text[:i]
		return
	}
	q.text = ""
}

// Clear empties the query.
func (q *Query) Clear() {
	q.text = ""
}
