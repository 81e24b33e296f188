package audio

import "fmt"

// Params carries the stream parameters negotiated at startup. It is built
// once from validated configuration and read-only afterwards.
type Params struct {
	SampleRate int     // frames per second
	ToneFreq   float64 // tone frequency in Hz
	OverallWPM float64 // effective (Farnsworth) rate
	CharWPM    float64 // character rate
	Channels   int     // output channel count
	Precision  int     // bits per sample for fixed-point output; 0 for float
	BlockSize  int     // frames per output block
}

// amplitudeScale returns the maximum representable magnitude for fixed-point
// output, or 0 when samples stay floating-point.
func (p Params) amplitudeScale() float64 {
	switch p.Precision {
	case 8:
		return 127.0
	case 16:
		return 32767.0
	}
	return 0
}

// check validates the fields the synthesizer depends on. Rate and frequency
// ranges are enforced by the configuration layer before Params is built.
func (p Params) check() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", p.SampleRate)
	}
	if p.Channels < 1 {
		return fmt.Errorf("invalid channel count %d", p.Channels)
	}
	if p.BlockSize < 1 {
		return fmt.Errorf("invalid block size %d", p.BlockSize)
	}
	switch p.Precision {
	case 0, 8, 16:
		return nil
	}
	return fmt.Errorf("unsupported sample precision %d bits", p.Precision)
}
