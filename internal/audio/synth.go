package audio

import (
	"math"

	"github.com/morsekit/cwplayer/internal/morse"
)

// Segment is an immutable mono sample buffer, shared read-only between the
// encoder side and the playback side. Samples are normalized to [-1, 1];
// for fixed-point output they are quantized at synthesis time so that the
// byte conversion at the sink boundary is exact.
type Segment struct {
	samples []float32
}

// Len returns the segment length in samples.
func (s *Segment) Len() int { return len(s.samples) }

// Bank holds the five fixed segments built once at startup from the current
// rate configuration. Segments are never mutated after construction.
type Bank struct {
	Dit     *Segment
	Dah     *Segment
	CharGap *Segment
	WordGap *Segment
	Idle    *Segment // one output block of silence for underrun substitution

	Timing morse.Timing
}

// NewBank synthesizes all segments for the given parameters. Building the
// bank twice from identical parameters yields identical segments.
func NewBank(p Params) (*Bank, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	t := morse.NewTiming(p.OverallWPM, p.CharWPM, p.SampleRate)
	return &Bank{
		Dit:     synthTone(1, p),
		Dah:     synthTone(3, p),
		CharGap: newSilence(t.CharGap),
		WordGap: newSilence(t.WordGap),
		Idle:    newSilence(p.BlockSize),
		Timing:  t,
	}, nil
}

// Segment returns the synthesized segment for a timing element.
func (b *Bank) Segment(e morse.Element) *Segment {
	switch e {
	case morse.Dit:
		return b.Dit
	case morse.Dah:
		return b.Dah
	case morse.CharGap:
		return b.CharGap
	}
	return b.WordGap
}

// synthTone builds an enveloped tone spanning the given number of units plus
// one trailing unit of silence. The envelope has a flat onset and an
// exponential release starting where the sustain ends; the onset is left
// unshaped on purpose to keep playback timing identical to the reference
// player, with the release alone preventing the audible click.
func synthTone(units float64, p Params) *Segment {
	rate := float64(p.SampleRate)
	u := 1.2 / p.CharWPM

	nsamps := morse.ToneSamples(units, p.CharWPM, p.SampleRate)
	attack2 := int(math.Round(units * u * rate))

	// Release transition length: a fifth of a unit, capped at 6 ms so slow
	// speeds do not smear the element edges.
	a := u * 0.2
	if a > 0.006 {
		a = 0.006
	}
	attack1 := int(a * rate)
	attack3 := attack1 + attack2

	rc := float64(attack1) / rate / 5.0
	scale := p.amplitudeScale()

	samples := make([]float32, nsamps)
	for i := range samples {
		var m float64
		switch {
		case i > attack2 && i < attack3:
			q := float64(i-attack2) / rate
			m = math.Exp(-q / rc)
		case i >= attack3:
			m = 0.0
		default:
			m = 1.0
		}
		v := m * math.Sin(2*math.Pi*p.ToneFreq*float64(i)/rate)
		if scale > 0 {
			v = math.Round(v*scale) / scale
		}
		samples[i] = float32(v)
	}
	return &Segment{samples: samples}
}

func newSilence(n int) *Segment {
	return &Segment{samples: make([]float32, n)}
}
