package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryEditing(t *testing.T) {
	var q Query
	assert.True(t, q.Empty())

	for _, r := range "héllo wörld" {
		q.Append(r)
	}
	assert.Equal(t, "héllo wörld", q.String())

	q.Pop()
	assert.Equal(t, "héllo wörl", q.String())

	q.DeleteWord()
	assert.Equal(t, "héllo", q.String())

	q.DeleteWord()
	assert.True(t, q.Empty(), "no space left deletes everything")

	q.Pop()
	assert.True(t, q.Empty(), "pop on empty is a no-op")

	q.Append('x')
	q.Clear()
	assert.Equal(t, "", q.String())
}

func TestQueryEditKeys(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{"letter appends", RuneKey('z'), "ab cdz"},
		{"q is text", RuneKey('q'), "ab cdq"},
		{"space appends", RuneKey(' '), "ab cd "},
		{"backspace", SpecialKey(KeyBackspace), "ab c"},
		{"ctrl+h", CtrlKey('h'), "ab c"},
		{"ctrl+w", CtrlKey('w'), "ab"},
		{"ctrl+u", CtrlKey('u'), ""},
		{"ctrl+k", CtrlKey('k'), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Query{text: "ab cd"}
			edit, ok := queryEdit(tt.key)
			assert.True(t, ok)
			edit(&q)
			assert.Equal(t, tt.want, q.String())
		})
	}

	_, ok := queryEdit(SpecialKey(KeyUp))
	assert.False(t, ok)
	_, ok = queryEdit(CtrlKey('c'))
	assert.False(t, ok)
}
