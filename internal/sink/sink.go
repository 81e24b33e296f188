// Package sink provides the output backends the stream driver plays
// through. Backends come in two shapes: callback-pulled (the backend's audio
// thread asks for samples) and push (the driver writes fixed-size blocks).
package sink

// Refill fills out with normalized mono samples, substituting silence when
// no audio is queued, and reports whether the stream is finished. It runs on
// the backend's real-time audio thread: it must not block, must not
// allocate, and must complete in bounded time.
type Refill func(out []float32) (done bool)

// Pull is a callback-pulled backend: it drives playback by invoking the
// refill function from its own audio thread.
type Pull interface {
	// Play runs the stream until the refill function reports done, then
	// lets buffered audio finish before returning.
	Play(refill Refill) error
	Close() error
}

// Push is a push-style backend accepting fixed-size blocks of interleaved
// PCM bytes, with a separate drain primitive invoked once at end of stream.
type Push interface {
	WriteBlock(block []byte) error
	Drain() error
	Close() error
}
