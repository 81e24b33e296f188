package audio

import (
	"fmt"
	"math"
)

// AppendPCM appends samples to dst as interleaved fixed-point PCM,
// replicating each sample across every output channel. Precision selects
// signed 8-bit or little-endian signed 16-bit encoding. Segments are
// quantized at synthesis time, so the conversion here is exact.
func AppendPCM(dst []byte, samples []float32, channels, precision int) ([]byte, error) {
	switch precision {
	case 8:
		return appendPCM8(dst, samples, channels), nil
	case 16:
		return appendPCM16(dst, samples, channels), nil
	}
	return dst, fmt.Errorf("unsupported sample precision %d bits", precision)
}

func appendPCM8(dst []byte, samples []float32, channels int) []byte {
	for _, s := range samples {
		v := int8(math.Round(float64(s) * 127.0))
		for c := 0; c < channels; c++ {
			dst = append(dst, byte(v))
		}
	}
	return dst
}

func appendPCM16(dst []byte, samples []float32, channels int) []byte {
	for _, s := range samples {
		v := int16(math.Round(float64(s) * 32767.0))
		for c := 0; c < channels; c++ {
			dst = append(dst, byte(v), byte(v>>8))
		}
	}
	return dst
}

// BytesPerFrame returns the encoded size of one frame for the given layout.
func BytesPerFrame(channels, precision int) int {
	return channels * precision / 8
}
