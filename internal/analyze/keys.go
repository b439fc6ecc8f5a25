// Package analyze turns ordered keystroke event sequences into typing
// statistics: sessions, timing distributions, typo reconstructions,
// modifier diagnostics, and error root causes.
package analyze

import "strings"

// Key identifiers follow the evdev naming used by the capture log.
const (
	KeyDelete     = "KEY_BACKSPACE"
	KeySpace      = "KEY_SPACE"
	KeyTab        = "KEY_TAB"
	KeyLeftShift  = "KEY_LEFTSHIFT"
	KeyRightShift = "KEY_RIGHTSHIFT"
	KeyCapsLock   = "KEY_CAPSLOCK"
	KeyEsc        = "KEY_ESC"

	keyPrefix = "KEY_"
)

// IsLetterKey reports whether key is one of KEY_A through KEY_Z.
func IsLetterKey(key string) bool {
	if len(key) != len(keyPrefix)+1 || !strings.HasPrefix(key, keyPrefix) {
		return false
	}
	c := key[len(keyPrefix)]
	return c >= 'A' && c <= 'Z'
}

// IsDigitKey reports whether key is one of KEY_0 through KEY_9.
func IsDigitKey(key string) bool {
	if len(key) <= len(keyPrefix) || !strings.HasPrefix(key, keyPrefix) {
		return false
	}
	for i := len(keyPrefix); i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}

// IsShiftKey reports whether key is a plain shift variant.
func IsShiftKey(key string) bool {
	return key == KeyLeftShift || key == KeyRightShift
}

// IsPrintableKey reports whether the key produces a visible character.
func IsPrintableKey(key string) bool {
	if IsLetterKey(key) || IsDigitKey(key) {
		return true
	}
	return key == KeySpace || key == KeyTab
}

// isSingleCharKey reports whether key decodes to exactly one character
// (a letter or digit key).
func isSingleCharKey(key string) bool {
	return IsLetterKey(key) || IsDigitKey(key)
}

// KeyToChar translates a key identifier to the character it produces.
// Letters honor the shift flag; digits and space ignore it. The second
// return is false for non-printing keys (modifiers, backspace, ...).
func KeyToChar(key string, shiftActive bool) (rune, bool) {
	switch {
	case IsLetterKey(key):
		c := rune(key[len(keyPrefix)])
		if !shiftActive {
			c += 'a' - 'A'
		}
		return c, true
	case IsDigitKey(key) && len(key) == len(keyPrefix)+1:
		return rune(key[len(keyPrefix)]), true
	case key == KeySpace:
		return ' ', true
	}
	return 0, false
}

// decodeKeys translates a press sequence to text. Shift keys arm a
// one-shot uppercase flag consumed by the next translated character and
// produce nothing themselves.
func decodeKeys(keys []string) []rune {
	var out []rune
	shift := false
	for _, key := range keys {
		if IsShiftKey(key) {
			shift = true
			continue
		}
		if c, ok := KeyToChar(key, shift); ok {
			out = append(out, c)
			shift = false
		}
	}
	return out
}
