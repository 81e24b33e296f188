package morse

import "fmt"

// patterns maps the supported input alphabet to its dot/dash pattern.
// The table is read-only for the process lifetime. Besides letters, digits
// and common punctuation it carries the usual prosigns: SK, AR, BT and AS.
var patterns = map[byte]string{
	'a': ".-",
	'b': "-...",
	'c': "-.-.",
	'd': "-..",
	'e': ".",
	'f': "..-.",
	'g': "--.",
	'h': "....",
	'i': "..",
	'j': ".---",
	'k': "-.-",
	'l': ".-..",
	'm': "--",
	'n': "-.",
	'o': "---",
	'p': ".--.",
	'q': "--.-",
	'r': ".-.",
	's': "...",
	't': "-",
	'u': "..-",
	'v': "...-",
	'w': ".--",
	'x': "-..-",
	'y': "-.--",
	'z': "--..",
	'0': "-----",
	'1': ".----",
	'2': "..---",
	'3': "...--",
	'4': "....-",
	'5': ".....",
	'6': "-....",
	'7': "--...",
	'8': "---..",
	'9': "----.",
	'/': "-..-.",
	'?': "..--..",
	',': "--..--",
	'.': ".-.-.-",
	'*': "...-.-", // SK
	'+': ".-.-.",  // AR
	'=': "-...-",  // BT
	'|': ".-...",  // AS
}

// Pattern returns the dot/dash pattern for b. Uppercase ASCII letters are
// folded to lowercase before lookup. The second return value is false for
// bytes outside the table.
func Pattern(b byte) (string, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	p, ok := patterns[b]
	return p, ok
}

// CheckTable verifies that every pattern in the table consists only of dot
// and dash symbols. It exists for the diagnostic mode; the table is static,
// so a failure here means the table itself was edited incorrectly.
func CheckTable() error {
	for c, p := range patterns {
		for i := 0; i < len(p); i++ {
			if p[i] != '.' && p[i] != '-' {
				return fmt.Errorf("invalid symbol %q in pattern for %q", p[i], c)
			}
		}
	}
	return nil
}

// isSpace reports whether b is an ASCII whitespace byte. Bytes at or above
// 0x80 are always treated as printable.
func isSpace(b byte) bool {
	if b >= 0x80 {
		return false
	}
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
