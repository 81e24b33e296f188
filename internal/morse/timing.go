package morse

import "math"

// Timing holds the sample counts for each Morse timing unit, derived from the
// configured rates per the ARRL Farnsworth standard ("A Standard for Morse
// Timing Using the Farnsworth Technique", QEX, April 1990). All lengths are
// in samples, one sample per frame regardless of channel count.
//
// Tone segments include one trailing unit of silence, so half a dit length of
// spacing is already represented inside each tone; the gap lengths subtract
// it to avoid double-counting.
type Timing struct {
	Unit    float64 // seconds per timing unit (PARIS: 50 units per word)
	Dit     int     // one-unit tone plus trailing unit
	Dah     int     // three-unit tone plus trailing unit
	CharGap int     // additional inter-character silence
	WordGap int     // additional inter-word silence
}

// NewTiming derives segment lengths for the given rates. overallWPM must not
// exceed charWPM; the caller validates configuration before reaching here.
func NewTiming(overallWPM, charWPM float64, sampleRate int) Timing {
	t := Timing{
		Unit: 1.2 / charWPM,
		Dit:  ToneSamples(1, charWPM, sampleRate),
		Dah:  ToneSamples(3, charWPM, sampleRate),
	}
	t.CharGap = charGapSamples(overallWPM, charWPM, sampleRate, t.Dit)
	t.WordGap = wordGapSamples(overallWPM, charWPM, sampleRate, t.Dit, t.CharGap)
	return t
}

// ToneSamples returns the length in samples of a tone spanning the given
// number of units plus one trailing unit of intrinsic silence.
func ToneSamples(units, charWPM float64, sampleRate int) int {
	u := 1.2 / charWPM
	return int(math.Round((units + 1.0) * u * float64(sampleRate)))
}

// farnsworthPause is Ta from the ARRL standard: the total extra pause time
// per word available for stretching gaps when the overall rate is slower
// than the character rate.
func farnsworthPause(overallWPM, charWPM float64) float64 {
	return ((60.0 * charWPM) - (37.2 * overallWPM)) / (charWPM * overallWPM)
}

func charGapSamples(overallWPM, charWPM float64, sampleRate int, ditLen int) int {
	var samplen float64
	if overallWPM >= charWPM {
		u := 1.2 / overallWPM
		samplen = 3.0 * u * float64(sampleRate)
	} else {
		ta := farnsworthPause(overallWPM, charWPM)
		samplen = (3.0 * ta / 19.0) * float64(sampleRate)
	}
	// Half a dit of spacing already sits in the tone's trailing unit.
	return int(math.Round(samplen - float64(ditLen)/2.0))
}

func wordGapSamples(overallWPM, charWPM float64, sampleRate int, ditLen, charGap int) int {
	var samplen float64
	if overallWPM >= charWPM {
		u := 1.2 / overallWPM
		samplen = 7.0 * u * float64(sampleRate)
	} else {
		ta := farnsworthPause(overallWPM, charWPM)
		samplen = (7.0 * ta / 19.0) * float64(sampleRate)
	}
	// The inter-character gap has already been played by the time a word gap
	// is queued, as has half a dit inside the last tone.
	accounted := float64(charGap) + float64(ditLen)/2.0
	return int(math.Round(samplen - accounted))
}

// RateError returns the percentage deviation between the overall rate implied
// by the timing and the target overall rate, measured over the standard
// 50-unit PARIS word: 10 dits, 4 dahs, 5 inter-character gaps and one
// inter-word gap.
func (t Timing) RateError(overallWPM float64, sampleRate int) float64 {
	perWord := float64(10*t.Dit + 4*t.Dah + 5*t.CharGap + t.WordGap)
	samplesPerMinute := float64(sampleRate) * 60.0
	wpm := samplesPerMinute / perWord
	return math.Abs(wpm-overallWPM) / overallWPM * 100.0
}
