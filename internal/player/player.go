// Package player contains the stream driver: it owns the playback queue and
// the encoder state for one session and keeps an output sink fed in real
// time while pulling input only as needed.
package player

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/morsekit/cwplayer/internal/audio"
	"github.com/morsekit/cwplayer/internal/morse"
	"github.com/morsekit/cwplayer/internal/observability"
	"github.com/morsekit/cwplayer/internal/sink"
)

const (
	// inputChunk is the read size for the input collaborator.
	inputChunk = 64

	// backpressurePoll is the bounded wait between backpressure checks while
	// the queue holds at least thresholdSeconds of audio.
	backpressurePoll = 100 * time.Millisecond

	// thresholdSeconds of queued audio above which input is not wanted.
	thresholdSeconds = 1.0
)

// Player drives one playback session. Input bytes are encoded into queued
// segment references; the queue is drained either by a push-sink block loop
// (Run) or by a pull sink's audio thread (PlayPull).
type Player struct {
	params    audio.Params
	bank      *audio.Bank
	queue     *audio.Queue
	enc       *morse.Encoder
	logger    zerolog.Logger
	threshold int
	eof       atomic.Bool
	failed    atomic.Bool
}

// New builds the segment bank for the given parameters and returns a ready
// player. Building the bank is the only failure point; it happens before any
// playback starts.
func New(p audio.Params, logger zerolog.Logger) (*Player, error) {
	bank, err := audio.NewBank(p)
	if err != nil {
		return nil, fmt.Errorf("build sound segments: %w", err)
	}
	pl := &Player{
		params:    p,
		bank:      bank,
		queue:     audio.NewQueue(),
		logger:    logger,
		threshold: int(thresholdSeconds * float64(p.SampleRate)),
	}
	pl.enc = morse.NewEncoder(pl.enqueue)
	logger.Debug().
		Int("dit_samples", bank.Timing.Dit).
		Int("dah_samples", bank.Timing.Dah).
		Int("char_gap_samples", bank.Timing.CharGap).
		Int("word_gap_samples", bank.Timing.WordGap).
		Msg("sound segments built")
	return pl, nil
}

func (p *Player) enqueue(e morse.Element) {
	p.queue.Enqueue(p.bank.Segment(e))
	observability.RecordSegmentEnqueued(e.String())
}

// pump reads input in small chunks and feeds the encoder, gated by the
// queued-sample threshold. It reports a read failure through errc and
// records end of input on EOF. Runs in its own goroutine for both driver
// shapes.
func (p *Player) pump(input io.Reader, errc chan<- error) {
	var buf [inputChunk]byte
	for {
		for p.queue.Samples() >= p.threshold {
			time.Sleep(backpressurePoll)
		}
		n, err := input.Read(buf[:])
		if n > 0 {
			p.enc.Write(buf[:n])
			observability.RecordInputBytes(n)
			observability.RecordQueueDepth(p.queue.Samples(), p.queue.Entries())
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				errc <- fmt.Errorf("read input: %w", err)
				// Stop the audio thread too; there is no recovery path.
				p.failed.Store(true)
				return
			}
			p.eof.Store(true)
			p.logger.Debug().Msg("end of input")
			return
		}
	}
}

// Run streams input to a push sink. Each loop iteration writes one block
// assembled by repeated queue consumption, substituting the idle block when
// the queue is empty; the sink's own write pacing bounds the loop. When end
// of input has been observed and the queue is empty the sink is drained and
// the session ends. Any I/O failure terminates the stream.
func (p *Player) Run(input io.Reader, out sink.Push) error {
	errc := make(chan error, 1)
	go p.pump(input, errc)

	frames := make([]float32, p.params.BlockSize)
	pcm := make([]byte, 0, p.params.BlockSize*audio.BytesPerFrame(p.params.Channels, p.params.Precision))

	for {
		select {
		case err := <-errc:
			return err
		default:
		}

		if err := p.writeBlock(out, frames, pcm); err != nil {
			return err
		}

		if p.eof.Load() && p.queue.Samples() == 0 {
			if err := out.Drain(); err != nil {
				return fmt.Errorf("drain sink: %w", err)
			}
			return nil
		}
	}
}

// writeBlock assembles and pushes one block of frames.
func (p *Player) writeBlock(out sink.Push, frames []float32, pcm []byte) error {
	filled := 0
	for filled < len(frames) {
		s := p.queue.Consume(len(frames) - filled)
		if len(s) == 0 {
			// Underrun: pad the rest of the block with silence.
			for i := filled; i < len(frames); i++ {
				frames[i] = 0
			}
			if filled == 0 && !p.eof.Load() {
				observability.RecordUnderrun()
			}
			break
		}
		copy(frames[filled:], s)
		filled += len(s)
	}

	block, err := audio.AppendPCM(pcm[:0], frames, p.params.Channels, p.params.Precision)
	if err != nil {
		return err
	}
	if err := out.WriteBlock(block); err != nil {
		return err
	}
	observability.RecordOutputBytes(len(block))
	observability.RecordQueueDepth(p.queue.Samples(), p.queue.Entries())
	return nil
}

// Refill implements the pull contract: it fills out with the next queued
// samples, substitutes silence on underrun, and reports true once end of
// input has been observed and the queue is empty. It runs on the sink's
// audio thread.
func (p *Player) Refill(out []float32) bool {
	filled := 0
	for filled < len(out) {
		s := p.queue.Consume(len(out) - filled)
		if len(s) == 0 {
			break
		}
		copy(out[filled:], s)
		filled += len(s)
	}
	if filled < len(out) {
		for i := filled; i < len(out); i++ {
			out[i] = 0
		}
		if filled == 0 && !p.eof.Load() {
			observability.RecordUnderrun()
		}
	}
	if p.failed.Load() {
		return true
	}
	return p.eof.Load() && p.queue.Samples() == 0
}

// PlayPull runs the callback-pulled shape: the pump goroutine feeds the
// queue while the sink's audio thread drains it through Refill.
func (p *Player) PlayPull(input io.Reader, out sink.Pull) error {
	errc := make(chan error, 1)
	go p.pump(input, errc)

	if err := out.Play(p.Refill); err != nil {
		return err
	}
	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}
