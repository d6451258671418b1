package editor

import "strings"

// Key is a key the editor tracks as held.
type Key int

const (
	KeySpace Key = iota + 1
	KeyDelete
	KeyBackspace
)

func (k Key) String() string {
	switch k {
	case KeySpace:
		return "space"
	case KeyDelete:
		return "delete"
	case KeyBackspace:
		return "backspace"
	}
	return "unknown"
}

func (k Key) known() bool { return k >= KeySpace && k <= KeyBackspace }

// ParseKey maps a key name ("space", " ", "delete", "backspace") to a Key.
func ParseKey(s string) (Key, bool) {
	switch strings.ToLower(s) {
	case "space", " ":
		return KeySpace, true
	case "delete", "del":
		return KeyDelete, true
	case "backspace":
		return KeyBackspace, true
	}
	return 0, false
}

// KeyTracker records which keys are currently held. Unknown keys are
// ignored.
type KeyTracker struct {
	held [KeyBackspace + 1]bool
}

// Press marks k held and reports whether that changed anything.
func (t *KeyTracker) Press(k Key) bool {
	if !k.known() || t.held[k] {
		return false
	}
	t.held[k] = true
	return true
}

// Release marks k up and reports whether that changed anything.
func (t *KeyTracker) Release(k Key) bool {
	if !k.known() || !t.held[k] {
		return false
	}
	t.held[k] = false
	return true
}

func (t *KeyTracker) IsHeld(k Key) bool {
	return k.known() && t.held[k]
}

// Held lists the held keys in Key order.
func (t *KeyTracker) Held() []Key {
	var out []Key
	for k := KeySpace; k <= KeyBackspace; k++ {
		if t.held[k] {
			out = append(out, k)
		}
	}
	return out
}

// Reset releases every key.
func (t *KeyTracker) Reset() { *t = KeyTracker{} }
