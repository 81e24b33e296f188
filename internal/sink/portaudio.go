package sink

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/morsekit/cwplayer/internal/audio"
)

// paSink plays through PortAudio's default output device using its
// callback API.
type paSink struct {
	params  audio.Params
	scratch []float32
	refill  Refill
	done    chan struct{}
	once    sync.Once
}

// NewPortAudio initializes PortAudio. Close terminates it.
func NewPortAudio(p audio.Params) (Pull, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize portaudio: %w", err)
	}
	return &paSink{
		params:  p,
		scratch: make([]float32, p.BlockSize),
		done:    make(chan struct{}),
	}, nil
}

func (s *paSink) Play(refill Refill) error {
	s.refill = refill
	stream, err := portaudio.OpenDefaultStream(0, s.params.Channels,
		float64(s.params.SampleRate), s.params.BlockSize, s.callback)
	if err != nil {
		return fmt.Errorf("open portaudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("start portaudio stream: %w", err)
	}
	<-s.done
	// Stop waits for buffered audio to finish, which is the drain step.
	if err := stream.Stop(); err != nil {
		stream.Close()
		return fmt.Errorf("stop portaudio stream: %w", err)
	}
	return stream.Close()
}

// callback runs on the PortAudio audio thread.
func (s *paSink) callback(out [][]float32) {
	n := len(out[0])
	if n > len(s.scratch) {
		// Only hit if the backend ignores the requested buffer size.
		s.scratch = make([]float32, n)
	}
	mono := s.scratch[:n]
	if s.refill(mono) {
		s.once.Do(func() { close(s.done) })
	}
	for ch := range out {
		copy(out[ch], mono)
	}
}

func (s *paSink) Close() error {
	return portaudio.Terminate()
}
