package morse

// Element is one playable timing element produced by the encoder.
type Element int

const (
	Dit Element = iota
	Dah
	CharGap
	WordGap
)

// String returns the element name used in logs and metric labels.
func (e Element) String() string {
	switch e {
	case Dit:
		return "dit"
	case Dah:
		return "dah"
	case CharGap:
		return "char_gap"
	case WordGap:
		return "word_gap"
	}
	return "unknown"
}

// Encoder converts an input byte stream into timing elements, emitted in
// playback order through the emit callback. Bytes outside the Morse table
// produce nothing, not even a gap. A run of whitespace produces a single
// word gap.
type Encoder struct {
	emit      func(Element)
	seenSpace bool
}

// NewEncoder returns an encoder delivering elements to emit.
func NewEncoder(emit func(Element)) *Encoder {
	return &Encoder{emit: emit}
}

// Write encodes every byte of p. It implements io.Writer and never fails;
// unsupported bytes are silently dropped.
func (e *Encoder) Write(p []byte) (int, error) {
	for _, b := range p {
		e.WriteByte(b)
	}
	return len(p), nil
}

// WriteByte encodes a single input byte.
func (e *Encoder) WriteByte(b byte) {
	if b >= 0x80 || !isSpace(b) {
		e.encodeChar(b)
		e.seenSpace = false
		return
	}
	if !e.seenSpace {
		e.emit(WordGap)
		e.seenSpace = true
	}
}

// encodeChar emits one dit or dah per pattern symbol, then one
// inter-character gap. Bytes without a pattern emit nothing.
func (e *Encoder) encodeChar(b byte) {
	p, ok := Pattern(b)
	if !ok {
		return
	}
	for i := 0; i < len(p); i++ {
		if p[i] == '.' {
			e.emit(Dit)
		} else {
			e.emit(Dah)
		}
	}
	e.emit(CharGap)
}
