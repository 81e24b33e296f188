package sink

import (
	"fmt"

	"github.com/jfreymuth/pulse"

	"github.com/morsekit/cwplayer/internal/audio"
)

// pulseSink plays through a PulseAudio server. The stream is mono float32;
// the server handles channel mapping and device format.
type pulseSink struct {
	client *pulse.Client
	params audio.Params
	refill Refill
}

// NewPulse connects to the default PulseAudio server.
func NewPulse(p audio.Params) (Pull, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("cwplayer"))
	if err != nil {
		return nil, fmt.Errorf("connect to pulseaudio: %w", err)
	}
	return &pulseSink{client: c, params: p}, nil
}

func (s *pulseSink) Play(refill Refill) error {
	s.refill = refill
	stream, err := s.client.NewPlayback(pulse.Float32Reader(s.read),
		pulse.PlaybackSampleRate(s.params.SampleRate),
		pulse.PlaybackLatency(0.1))
	if err != nil {
		return fmt.Errorf("open playback stream: %w", err)
	}
	stream.Start()
	// Drain blocks until everything queued before EndOfData has played.
	stream.Drain()
	stream.Close()
	return nil
}

func (s *pulseSink) read(out []float32) (int, error) {
	if s.refill(out) {
		// The final buffer still carries queued samples; play it, then end.
		return len(out), pulse.EndOfData
	}
	return len(out), nil
}

func (s *pulseSink) Close() error {
	s.client.Close()
	return nil
}
