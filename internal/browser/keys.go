package browser

import "fmt"

// KeyCode identifies a key independently of the terminal library.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyF5
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyEsc:       "esc",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyF5:        "f5",
}

// Key is one key press. Rune is set for KeyRune; Ctrl marks a control
// chord such as ctrl+w, in which case Rune is the lower-case letter.
type Key struct {
	Code KeyCode
	Rune rune
	Ctrl bool
}

// RuneKey is a plain printable key.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// CtrlKey is ctrl plus a letter.
func CtrlKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r, Ctrl: true}
}

// SpecialKey is a named non-printable key.
func SpecialKey(code KeyCode) Key {
	return Key{Code: code}
}

func (k Key) String() string {
	if k.Code != KeyRune {
		return keyNames[k.Code]
	}
	if k.Ctrl {
		return fmt.Sprintf("ctrl+%c", k.Rune)
	}
	return string(k.Rune)
}

func (k Key) is(code KeyCode) bool {
	return k.Code == code && code != KeyRune
}

func (k Key) isRune(r rune) bool {
	return k.Code == KeyRune && !k.Ctrl && k.Rune == r
}

func (k Key) isCtrl(r rune) bool {
	return k.Code == KeyRune && k.Ctrl && k.Rune == r
}

// queryEdit maps the editing keys shared by Search and FuzzyFind.
func queryEdit(k Key) (func(*Query), bool) {
	switch {
	case k.is(KeyBackspace), k.is(KeyDelete), k.isCtrl('h'):
		return (*Query).Pop, true
	case k.isCtrl('w'):
		return (*Query).DeleteWord, true
	case k.isCtrl('u'), k.isCtrl('k'):
		return (*Query).Clear, true
	case k.Code == KeyRune && !k.Ctrl && k.Rune >= ' ':
		r := k.Rune
		return func(q *Query) { q.Append(r) }, true
	}
	return nil, false
}
